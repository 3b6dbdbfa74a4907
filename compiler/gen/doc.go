// Package gen converts source entities into velox models and renders them
// as velox schema source.
//
// # Architecture
//
// The conversion pipeline follows this flow:
//
//	load.Registry (atlas tables + relationship mappings)
//	        ↓
//	   Graph.Convert (columns → fields, relationships → edges)
//	        ↓
//	   Graph (arena of Type nodes, forward references resolved)
//	        ↓
//	   Format / Writer / Export
//	        ↓
//	   schema/{model}.go, snapshot.{json,yaml,msgpack}
//
// # Key Types
//
//   - Graph: Conversion context holding the converted models, the cache and
//     the in-progress set that breaks relation cycles
//   - Type: A converted model with fields, edges and unique constraints
//   - Field: A column converted through the field constructor of its tag
//   - Edge: A relation (M2O, M2M) or the reverse edge registered on its target
//   - ForwardRef: Handle of a model whose conversion is not complete yet
//   - Metadata: Registry the models are bound to, one model per table
//
// # Relation Cycles
//
// A many-to-one relation to a model still being converted, or to the model
// itself, is declared with a ForwardRef. Once the target completes, the
// reference is resolved and the reverse edge is registered on the target.
// After each top-level Convert, any reference still outstanding is resolved
// from the arena, or the conversion fails with an EdgeError.
//
// Many-to-many relations are wired once per join table. The first side
// converted declares the edge and a through model named after the join
// table, and the other side receives the reverse edge.
//
// # Error Handling
//
//   - SchemaError: Unsupported column types and invalid fields
//   - ConfigError: Invalid options
//   - EdgeError: Unresolvable relations and related-name collisions
//   - GenerationError: Formatting, writing and export failures
//
// A failed conversion leaves the graph failed:
//
//	g, err := gen.NewGraph(cfg, registry)
//	if err != nil {
//	    return err
//	}
//	if _, err := g.ConvertAll(); err != nil {
//	    if gen.IsEdgeError(err) {
//	        // Handle relation error
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./schema"),
//	    gen.WithPackage("schema"),
//	    gen.WithExclude("User", "password"),
//	)
//
// # Output
//
// Format renders one model with jennifer. Writer writes one file per model
// in parallel and runs goimports over the result. Export returns a plain
// snapshot of the models, encodable as JSON, YAML or msgpack.
package gen
