package http

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

// ListFamiliesHandler returns all nuisance families, paginated.
func ListFamiliesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		families, err := deps.Catalog.ListFamilies(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}

		page, pg := paginate(c, families, 100, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreateFamilyHandler registers a nuisance family.
func CreateFamilyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.CreateNuisanceFamily
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		family, err := deps.Catalog.CreateFamily(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(family)
	}
}

// GetFamilyHandler returns one nuisance family.
func GetFamilyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		family, err := deps.Catalog.GetFamily(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(family)
	}
}

// FamilyTypesHandler lists the nuisance types of a family.
func FamilyTypesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := deps.Catalog.ListTypes(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if types == nil {
			types = []domain.NuisanceType{}
		}
		return c.JSON(types)
	}
}

// CreateTypeHandler registers a nuisance type.
func CreateTypeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.CreateNuisanceType
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		t, err := deps.Catalog.CreateType(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// GetTypeHandler returns one nuisance type with its family.
func GetTypeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := deps.Catalog.GetType(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(t)
	}
}

// reportRequest mirrors domain.CreateNuisanceReport but keeps the location
// raw so a bad geometry is reported against its field.
type reportRequest struct {
	TypeID    string          `json:"type_id"`
	UserID    *string         `json:"user_id"`
	Location  json.RawMessage `json:"location"`
	SRID      *uint32         `json:"srid"`
	Intensity int             `json:"intensity"`
}

// CreateReportHandler reports a nuisance.
func CreateReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reportRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		in := domain.CreateNuisanceReport{
			TypeID:    req.TypeID,
			UserID:    req.UserID,
			SRID:      req.SRID,
			Intensity: req.Intensity,
		}
		if err := in.Location.UnmarshalJSON(orNull(req.Location)); err != nil {
			return geometryIssue(c, "location", err)
		}

		report, err := deps.Reporting.ReportNuisance(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		c.Location("/v1/reports/" + report.ID)
		return c.Status(fiber.StatusCreated).JSON(report)
	}
}

func orNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}

// GetReportHandler returns a report with its location as GeoJSON.
func GetReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := deps.Reporting.GetReport(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	}
}

// ReportLocationHandler returns the location of a report as EWKB, raw or hex.
func ReportLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order := deps.Geometry.ByteOrder
		if q := c.Query("order"); q != "" {
			o, err := ewkb.ParseByteOrder(q)
			if err != nil {
				return errBadRequest(c, "order must be big, little or native")
			}
			order = o
		}
		format := c.Query("format", "binary")
		if format != "binary" && format != "hex" {
			return errBadRequest(c, "format must be binary or hex")
		}

		b, err := deps.Reporting.LocationEWKB(c.UserContext(), c.Params("id"), order)
		if err != nil {
			return respondError(c, err)
		}
		if format == "hex" {
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.SendString(ewkb.FormatHex(b))
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return c.Send(b)
	}
}

// NearbyReportsHandler returns reports within a radius of a point.
func NearbyReportsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			return errBadRequest(c, "lat must be a number")
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			return errBadRequest(c, "lon must be a number")
		}
		radius := c.QueryFloat("radius", 500)
		limit := c.QueryInt("limit", 50)

		reports, err := deps.Reporting.FindNearby(c.UserContext(), lat, lon, radius, limit)
		if err != nil {
			return respondError(c, err)
		}
		if reports == nil {
			reports = []domain.NuisanceReport{}
		}
		return c.JSON(reports)
	}
}

// geometryResponse describes a geometry handled by the geometry endpoints.
type geometryResponse struct {
	Kind          string          `json:"kind"`
	Layout        string          `json:"layout"`
	SRID          uint32          `json:"srid"`
	Size          int             `json:"size"`
	TrailingBytes int             `json:"trailing_bytes,omitempty"`
	Geometry      json.RawMessage `json:"geometry"`
	EWKB          string          `json:"ewkb,omitempty"`
}

func describe(g geospatial.Geometry, size int) (geometryResponse, error) {
	gj, err := geospatial.MarshalGeoJSON(g)
	if err != nil {
		return geometryResponse{}, err
	}
	return geometryResponse{
		Kind:     g.Kind().String(),
		Layout:   g.Layout().String(),
		SRID:     g.SRID(),
		Size:     size,
		Geometry: gj,
	}, nil
}
