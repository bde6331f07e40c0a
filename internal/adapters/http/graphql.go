package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

// geoJSONScalar serializes locations as GeoJSON objects and parses GeoJSON
// given either as an object literal or as a JSON string.
var geoJSONScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "GeoJSON",
	Description: "A GeoJSON geometry object",
	Serialize: func(value interface{}) interface{} {
		var g geospatial.Geometry
		switch v := value.(type) {
		case domain.Location:
			g = v.Geometry
		case *domain.Location:
			if v != nil {
				g = v.Geometry
			}
		case geospatial.Geometry:
			g = v
		}
		if g == nil {
			return nil
		}
		data, err := geospatial.MarshalGeoJSON(g)
		if err != nil {
			return nil
		}
		var out map[string]interface{}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil
		}
		return out
	},
	ParseValue: func(value interface{}) interface{} {
		var data []byte
		switch v := value.(type) {
		case string:
			data = []byte(v)
		case map[string]interface{}:
			data, _ = json.Marshal(v)
		default:
			return nil
		}
		var loc domain.Location
		if err := loc.UnmarshalJSON(data); err != nil {
			return nil
		}
		return loc
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if s, ok := valueAST.(*ast.StringValue); ok {
			var loc domain.Location
			if err := loc.UnmarshalJSON([]byte(s.Value)); err != nil {
				return nil
			}
			return loc
		}
		return nil
	},
})

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	familyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NuisanceFamily",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"label":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"created_at":  &graphql.Field{Type: graphql.DateTime},
		},
	})

	typeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NuisanceType",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"family_id":   &graphql.Field{Type: graphql.String},
			"label":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"family":      &graphql.Field{Type: familyType},
			"created_at":  &graphql.Field{Type: graphql.DateTime},
		},
	})

	reportType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NuisanceReport",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"type_id":    &graphql.Field{Type: graphql.String},
			"type":       &graphql.Field{Type: typeType},
			"user_id":    &graphql.Field{Type: graphql.String},
			"intensity":  &graphql.Field{Type: graphql.Int},
			"distance":   &graphql.Field{Type: graphql.Float},
			"created_at": &graphql.Field{Type: graphql.DateTime},
			"location":   &graphql.Field{Type: geoJSONScalar},
			"kind": &graphql.Field{
				Type:        graphql.String,
				Description: "Geometry kind of the location, e.g. PointS or PolygonZ",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, ok := p.Source.(*domain.NuisanceReport)
					if !ok || r.Location.IsZero() {
						return nil, nil
					}
					return r.Location.Kind().String(), nil
				},
			},
			"location_ewkb": &graphql.Field{
				Type:        graphql.String,
				Description: "Location as upper-case EWKB hex",
				Args: graphql.FieldConfigArgument{
					"order": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, ok := p.Source.(*domain.NuisanceReport)
					if !ok || r.Location.IsZero() {
						return nil, nil
					}
					order := deps.Geometry.ByteOrder
					if s, _ := p.Args["order"].(string); s != "" {
						o, err := ewkb.ParseByteOrder(s)
						if err != nil {
							return nil, err
						}
						order = o
					}
					return ewkb.EncodeHex(r.Location.Geometry, order), nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"families": &graphql.Field{
				Type:        graphql.NewList(familyType),
				Description: "List all nuisance families",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.ListFamilies(p.Context)
				},
			},
			"types": &graphql.Field{
				Type:        graphql.NewList(typeType),
				Description: "List the nuisance types of a family",
				Args: graphql.FieldConfigArgument{
					"family_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.ListTypes(p.Context, p.Args["family_id"].(string))
				},
			},
			"report": &graphql.Field{
				Type:        reportType,
				Description: "Get a report by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Reporting.GetReport(p.Context, p.Args["id"].(string))
				},
			},
			"nearbyReports": &graphql.Field{
				Type:        graphql.NewList(reportType),
				Description: "Find reports near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 500.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					reports, err := deps.Reporting.FindNearby(p.Context,
						p.Args["lat"].(float64), p.Args["lon"].(float64),
						p.Args["radius"].(float64), p.Args["limit"].(int))
					if err != nil {
						return nil, err
					}
					out := make([]*domain.NuisanceReport, len(reports))
					for i := range reports {
						out[i] = &reports[i]
					}
					return out, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"reportNuisance": &graphql.Field{
				Type:        reportType,
				Description: "Report a nuisance at a location",
				Args: graphql.FieldConfigArgument{
					"type_id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"intensity": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"location":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(geoJSONScalar)},
					"srid":      &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := domain.CreateNuisanceReport{
						TypeID:    p.Args["type_id"].(string),
						Intensity: p.Args["intensity"].(int),
					}
					if loc, ok := p.Args["location"].(domain.Location); ok {
						in.Location = loc
					}
					if srid, ok := p.Args["srid"].(int); ok && srid > 0 {
						s := uint32(srid)
						in.SRID = &s
					}
					return deps.Reporting.ReportNuisance(p.Context, in)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
