// Package graphql renders converted velox models as a GraphQL schema (SDL)
// and keeps the model bindings of a gqlgen.yml in sync with it.
//
// # Usage
//
//	g, err := gen.NewGraph(cfg, registry)
//	if err != nil {
//	    return err
//	}
//	if _, err := g.ConvertAll(); err != nil {
//	    return err
//	}
//	sdl, err := graphql.Render(g.Models(),
//	    graphql.WithQuery(),
//	    graphql.WithModelPackage("github.com/org/project/velox"),
//	)
//
// Every model becomes an object type. Column fields map to the built-in
// scalars where one exists and to the custom scalars Decimal, Date, Time and
// Clock otherwise. Primary keys map to ID. Relations map to object fields:
// foreign keys to a single object, reverse and many-to-many edges to a
// non-null list.
//
// # gqlgen
//
// InjectBindings adds the schema path, the autobind package and the custom
// scalar bindings to a gqlgen configuration:
//
//	cfg, err := graphql.LoadGQLGenConfig("gqlgen.yml")
//	if err != nil {
//	    return err
//	}
//	cfg.InjectBindings("velox.graphql", "github.com/org/project/velox")
//	err = graphql.SaveGQLGenConfig("gqlgen.yml", cfg)
package graphql
