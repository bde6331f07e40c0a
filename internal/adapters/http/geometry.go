package http

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
	"github.com/samirrijal/signuis/internal/pkg/metrics"
)

// DecodeGeometryHandler decodes an EWKB body and describes the geometry.
// application/octet-stream bodies are read as raw bytes, anything else as
// hex text.
func DecodeGeometryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 {
			return errBadRequest(c, "request body is empty")
		}

		raw := body
		if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEOctetStream) {
			text := strings.TrimPrefix(strings.TrimSpace(string(body)), `\x`)
			b, err := hex.DecodeString(text)
			if err != nil {
				return geometryIssue(c, "body", err)
			}
			raw = b
		}

		g, n, err := ewkb.DecodePrefix(raw)
		if err != nil {
			metrics.GeometryDecodeErrors.WithLabelValues(ewkb.ReasonOf(err).String()).Inc()
			return geometryIssue(c, "body", err)
		}

		resp, err := describe(g, n)
		if err != nil {
			return geometryIssue(c, "body", err)
		}
		resp.TrailingBytes = len(raw) - n
		return c.JSON(resp)
	}
}

type encodeRequest struct {
	Geometry json.RawMessage `json:"geometry"`
	SRID     *uint32         `json:"srid"`
	Order    string          `json:"order"`
}

// EncodeGeometryHandler encodes a GeoJSON geometry to EWKB. The result is
// returned as JSON with hex, or as raw bytes with ?format=binary.
func EncodeGeometryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req encodeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if len(req.Geometry) == 0 || string(req.Geometry) == "null" {
			return errBadRequest(c, "geometry is required")
		}

		order := deps.Geometry.ByteOrder
		if req.Order != "" {
			o, err := ewkb.ParseByteOrder(req.Order)
			if err != nil {
				return errBadRequest(c, "order must be big, little or native")
			}
			order = o
		}

		g, err := geospatial.UnmarshalGeoJSON(req.Geometry, deps.defaultSRID())
		if err != nil {
			return geometryIssue(c, "geometry", err)
		}
		if req.SRID != nil {
			g = geospatial.WithSRID(g, *req.SRID)
		}

		b := ewkb.EncodeWithByteOrder(g, order)
		metrics.GeometryEncodedBytes.Observe(float64(len(b)))

		if c.Query("format") == "binary" {
			c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
			return c.Send(b)
		}

		resp, err := describe(g, len(b))
		if err != nil {
			return geometryIssue(c, "geometry", err)
		}
		resp.EWKB = ewkb.FormatHex(b)
		return c.JSON(resp)
	}
}
