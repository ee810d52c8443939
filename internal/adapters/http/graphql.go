package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	personType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"party":    &graphql.Field{Type: graphql.String},
			"district": &graphql.Field{Type: graphql.String},
			"chamber":  &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
			"image":    &graphql.Field{Type: graphql.String},
		},
	})

	precinctType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Precinct",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
			"total_votes":  &graphql.Field{Type: graphql.Int},
			"centroid_lat": &graphql.Field{Type: graphql.Float},
			"centroid_lon": &graphql.Field{Type: graphql.Float},
		},
	})

	precinctDistanceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PrecinctDistance",
		Fields: graphql.Fields{
			"precinct":       &graphql.Field{Type: precinctType},
			"distance_miles": &graphql.Field{Type: graphql.Float},
		},
	})

	voteEventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "VoteEvent",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.String},
			"bill_id": &graphql.Field{Type: graphql.String},
			"motion":  &graphql.Field{Type: graphql.String},
			"result":  &graphql.Field{Type: graphql.String},
		},
	})

	billType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bill",
		Fields: graphql.Fields{
			"id":                        &graphql.Field{Type: graphql.String},
			"identifier":                &graphql.Field{Type: graphql.String},
			"title":                     &graphql.Field{Type: graphql.String},
			"jurisdiction_area_id":      &graphql.Field{Type: graphql.String},
			"jurisdiction_level":        &graphql.Field{Type: graphql.String},
			"latest_action_description": &graphql.Field{Type: graphql.String},
			"ai_summary":                &graphql.Field{Type: graphql.String},
			"votes":                     &graphql.Field{Type: graphql.NewList(voteEventType)},
		},
	})

	billPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BillPage",
		Fields: graphql.Fields{
			"total_bills":  &graphql.Field{Type: graphql.Int},
			"total_pages":  &graphql.Field{Type: graphql.Int},
			"current_page": &graphql.Field{Type: graphql.Int},
			"page_size":    &graphql.Field{Type: graphql.Int},
			"bills":        &graphql.Field{Type: graphql.NewList(billType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"representatives": &graphql.Field{
				Type:        graphql.NewList(personType),
				Description: "People serving a ZIP code's area",
				Args: graphql.FieldConfigArgument{
					"zip": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					zip := p.Args["zip"].(string)
					return deps.Representatives.RepresentativesFor(p.Context, zip)
				},
			},
			"precinctsNearby": &graphql.Field{
				Type:        graphql.NewList(precinctDistanceType),
				Description: "Precincts within a radius of a ZIP code's centroid",
				Args: graphql.FieldConfigArgument{
					"zip":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 5.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					zip := p.Args["zip"].(string)
					radius := p.Args["radius"].(float64)
					return deps.Precincts.FindWithinRadius(p.Context, usecases.ZipAreaID(zip), radius)
				},
			},
			"bill": &graphql.Field{
				Type:        billType,
				Description: "A bill with its vote events",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Bills.GetWithVotes(p.Context, id)
				},
			},
			"bills": &graphql.Field{
				Type:        billPageType,
				Description: "Paginated bills for a ZIP code's representatives",
				Args: graphql.FieldConfigArgument{
					"zip":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"page":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
					"hasVotes":  &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"sortBy":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"sortOrder": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := usecases.PageRequest{
						Page:     p.Args["page"].(int),
						PageSize: p.Args["pageSize"].(int),
						SortBy:   p.Args["sortBy"].(string),
						Order:    p.Args["sortOrder"].(string),
						Filter: domain.BillFilter{
							HasVotes: p.Args["hasVotes"].(bool),
						},
					}
					return deps.Bills.PageForZip(p.Context, p.Args["zip"].(string), req)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
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
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
