package ewkb_test

import (
	"testing"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

func FuzzDecode(f *testing.F) {
	for _, l := range []geospatial.Layout{geospatial.XY, geospatial.XYZ} {
		for _, g := range fixtures(l) {
			f.Add(ewkb.EncodeWithByteOrder(g, ewkb.BigEndian))
			f.Add(ewkb.EncodeWithByteOrder(g, ewkb.LittleEndian))
		}
	}
	f.Add([]byte{})
	f.Add([]byte{0x01, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x7F})

	f.Fuzz(func(t *testing.T, b []byte) {
		g, n, err := ewkb.DecodePrefix(b)
		if err != nil {
			if g != nil || n != 0 {
				t.Fatalf("partial result on error: %v", err)
			}
			if ewkb.ReasonOf(err) == 0 {
				t.Fatalf("untyped error: %v", err)
			}
			return
		}
		if n > len(b) {
			t.Fatalf("consumed %d of %d bytes", n, len(b))
		}
		if size := ewkb.EncodedSize(g); size != n {
			t.Fatalf("encoded size %d, consumed %d", size, n)
		}
		if _, err := ewkb.Decode(ewkb.Encode(g)); err != nil {
			t.Fatalf("re-encoded geometry does not decode: %v", err)
		}
	})
}
