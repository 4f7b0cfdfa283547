// Package cli provides the command-line interface for querygen.
//
// Commands:
//   - generate: Build an operation and variables for one or more root fields
//   - fields: List the root fields of a schema with their signatures
//   - check: Generate every root field and validate the results
//   - init: Write a querygen.yaml with the default settings
//   - version: Show querygen version
//
// Settings come from querygen.yaml (or querygen.yml, querygen.json), the
// QUERYGEN_* environment variables and command flags, in increasing order of
// precedence. Schema patterns in the config file are relative to the file;
// patterns given with --schema are relative to the working directory.
//
// Usage:
//
//	querygen init -s 'schema/**/*.graphql'
//	querygen fields
//	querygen generate person
//	querygen generate Mutation.createPerson --seed 7 -o json
//	querygen generate --factory OddNumber=5 numbers
//	querygen check --json
package cli
