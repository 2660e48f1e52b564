package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/data-tales/tree-locator/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the locator service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	treePointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TreePoint",
		Fields: graphql.Fields{
			"id":  &graphql.Field{Type: graphql.Float},
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	queryEchoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "QueryEcho",
		Fields: graphql.Fields{
			"q":            &graphql.Field{Type: graphql.String},
			"display_name": &graphql.Field{Type: graphql.String},
			"lat":          &graphql.Field{Type: graphql.Float},
			"lon":          &graphql.Field{Type: graphql.Float},
			"query_mode":   &graphql.Field{Type: graphql.String},
			"mode":         &graphql.Field{Type: graphql.String},
			"radius_km":    &graphql.Field{Type: graphql.Float},
			"limit":        &graphql.Field{Type: graphql.Int},
		},
	})

	attributionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Attribution",
		Fields: graphql.Fields{
			"text":        &graphql.Field{Type: graphql.String},
			"license_url": &graphql.Field{Type: graphql.String},
		},
	})

	searchResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TreeSearchResult",
		Fields: graphql.Fields{
			"query":       &graphql.Field{Type: queryEchoType},
			"tree_count":  &graphql.Field{Type: graphql.Float},
			"sample":      &graphql.Field{Type: graphql.NewList(treePointType)},
			"attribution": &graphql.Field{Type: attributionType},
			"timing_ms":   &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"trees": &graphql.Field{
				Type:        searchResultType,
				Description: "Count trees mapped in OpenStreetMap for a place",
				Args: graphql.FieldConfigArgument{
					"q":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"query_mode": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: domain.QueryModeBoundary},
					"mode":       &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: domain.ModeCount},
					"radius_km":  &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: domain.RadiusDefaultKm},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: domain.SampleDefault},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q, err := domain.ValidateQuery(p.Args["q"].(string))
					if err != nil {
						return nil, err
					}
					queryMode, err := domain.ParseQueryMode(p.Args["query_mode"].(string))
					if err != nil {
						return nil, err
					}
					mode, err := domain.ParseMode(p.Args["mode"].(string))
					if err != nil {
						return nil, err
					}

					res, err := deps.Locator.Search(p.Context, domain.SearchParams{
						Query:     q,
						QueryMode: queryMode,
						Mode:      mode,
						RadiusKm:  p.Args["radius_km"].(float64),
						Limit:     p.Args["limit"].(int),
					})
					if err != nil {
						return nil, err
					}

					// Convert to maps so graphql-go resolves snake_case fields
					echo := map[string]interface{}{
						"q":            res.Query.Q,
						"display_name": res.Query.DisplayName,
						"lat":          res.Query.Lat,
						"lon":          res.Query.Lon,
						"query_mode":   res.Query.QueryMode,
						"mode":         res.Query.Mode,
					}
					if res.Query.RadiusKm != nil {
						echo["radius_km"] = *res.Query.RadiusKm
					}
					if res.Query.Limit != nil {
						echo["limit"] = *res.Query.Limit
					}

					sample := []map[string]interface{}{}
					for _, t := range res.Sample {
						sample = append(sample, map[string]interface{}{
							"id":  float64(t.ID),
							"lat": t.Lat,
							"lon": t.Lon,
						})
					}

					return map[string]interface{}{
						"query":      echo,
						"tree_count": float64(res.TreeCount),
						"sample":     sample,
						"attribution": map[string]interface{}{
							"text":        res.Attribution.Text,
							"license_url": res.Attribution.LicenseURL,
						},
						"timing_ms": float64(res.TimingMS),
					}, nil
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
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
