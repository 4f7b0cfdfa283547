// Package querygen builds GraphQL operations and matching variables from a schema.
//
// Given a root field of a parsed schema, Generate selects the field and its
// sub-fields up to a depth bound, binds every argument to an operation
// variable, and fabricates a plausible value for each variable.
//
// # Factories
//
// Values for scalars, enums and whole wrapped types come from factories keyed
// by type text. A key is either exact ("[OddNumber!]!") or a glob where '*'
// matches any substring ("Str*", "*Date*"). For each value the generator looks
// at the fully wrapped type first and strips one wrapper at a time, so
// "[OddNumber!]!" is tried before "[OddNumber!]", "OddNumber!" and
// "OddNumber". Exact keys beat globs, and among globs the one with fewer
// wildcards and more literal text wins.
//
// When no factory matches, a built-in table keyed by scalar name families
// ("int", "date", "uuid", ...) applies. Enums default to their first value.
// A scalar matched by neither yields an *UnresolvedScalarError carrying a
// factory snippet to paste into the configuration.
//
// # Usage
//
//	schema := gqlparser.MustLoadSchema(&ast.Source{Input: sdl})
//	field := schema.Query.Fields.ForName("person")
//
//	cfg := querygen.DefaultConfig()
//	cfg.MaxDepth = 3
//	cfg.Factories = querygen.Factories{
//	    "OddNumber": func(ctx querygen.FactoryContext) any { return 7 },
//	}
//
//	out, err := querygen.Generate(schema, field, cfg)
//
// Lists are always generated with exactly one element. Nullable values follow
// the configured NullGenerationStrategy.
package querygen
