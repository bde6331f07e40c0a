package ewkb

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ByteOrder is the value of the flag byte that opens every geometry.
type ByteOrder uint8

const (
	BigEndian    ByteOrder = 0 // XDR
	LittleEndian ByteOrder = 1 // NDR
)

// NativeByteOrder returns the byte order of the host.
func NativeByteOrder() ByteOrder {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return LittleEndian
	}
	return BigEndian
}

// ParseByteOrder accepts "big", "little" or "native" (and the XDR/NDR aliases).
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return NativeByteOrder(), nil
	case "big", "xdr", "be":
		return BigEndian, nil
	case "little", "ndr", "le":
		return LittleEndian, nil
	default:
		return 0, errors.Errorf("ewkb: unknown byte order %q", s)
	}
}

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

func (o ByteOrder) binary() binary.AppendByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// writer appends primitives to a growable buffer in one byte order.
type writer struct {
	buf   []byte
	order binary.AppendByteOrder
}

func newWriter(dst []byte, o ByteOrder) *writer {
	return &writer{buf: dst, order: o.binary()}
}

func (w *writer) byteOrder(o ByteOrder) { w.buf = append(w.buf, byte(o)) }

func (w *writer) uint32(v uint32) { w.buf = w.order.AppendUint32(w.buf, v) }

func (w *writer) float64(v float64) { w.buf = w.order.AppendUint64(w.buf, math.Float64bits(v)) }

func (w *writer) count(n int) { w.uint32(uint32(n)) }

// reader is a bounds-checked cursor over an immutable input. The byte order
// is switched every time a geometry header is read.
type reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

func newReader(b []byte) *reader {
	return &reader{buf: b, order: binary.LittleEndian}
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) eof() error {
	return &DecodeError{Reason: UnexpectedEOF, Offset: len(r.buf)}
}

// byteOrder reads the flag byte and switches the reader to that order.
func (r *reader) byteOrder() (ByteOrder, error) {
	if r.remaining() < 1 {
		return 0, r.eof()
	}
	flag := r.buf[r.off]
	switch ByteOrder(flag) {
	case BigEndian:
		r.order = binary.BigEndian
	case LittleEndian:
		r.order = binary.LittleEndian
	default:
		return 0, &DecodeError{Reason: UnknownTypeCode, Code: uint32(flag), Offset: r.off}
	}
	r.off++
	return ByteOrder(flag), nil
}

func (r *reader) uint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, r.eof()
	}
	v := r.order.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) float64() (float64, error) {
	if r.remaining() < 8 {
		return 0, r.eof()
	}
	v := math.Float64frombits(r.order.Uint64(r.buf[r.off:]))
	r.off += 8
	return v, nil
}

// count reads an element count and rejects it when n elements of at least
// minElemSize bytes each cannot fit in what is left of the input. This keeps
// a corrupted length prefix from driving a large allocation.
func (r *reader) count(minElemSize int) (int, error) {
	n, err := r.uint32()
	if err != nil {
		return 0, err
	}
	if uint64(n)*uint64(minElemSize) > uint64(r.remaining()) {
		return 0, r.eof()
	}
	return int(n), nil
}

// float64s reads n ordinates into a fresh slice.
func (r *reader) float64s(n int) ([]float64, error) {
	if n < 0 || uint64(n)*8 > uint64(r.remaining()) {
		return nil, r.eof()
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(r.order.Uint64(r.buf[r.off:]))
		r.off += 8
	}
	return out, nil
}
