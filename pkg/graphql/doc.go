// Package graphql loads the GraphQL schemas that queries are generated from.
//
// A schema comes from an SDL string, one or more SDL files, doublestar globs
// over SDL files, or the JSON result of an introspection query:
//
//	schema, err := graphql.LoadSchema(".", "schema/**/*.graphql")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	op, field, err := schema.LookupField(graphql.OperationQuery, "Query.person")
//
// The returned field definitions are gqlparser AST nodes and feed straight
// into querygen.Generate.
package graphql
