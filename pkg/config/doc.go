// Package config loads the querygen project configuration.
//
// A config file is YAML (querygen.yaml, querygen.yml) or JSON (querygen.json):
//
//	schema:
//	  - ./schema/**/*.graphql
//	queryType: QUERY
//	maxDepth: 3
//	nullGenerationStrategy: NEVER_NULL
//	seed: 42
//	factories:
//	  OddNumber: { value: 5 }
//	  "Str*": { template: "{{faker.word}}-{{target}}" }
//	  "DateTime!": { expr: "HasDefault ? Default : Faker.DateTime()" }
//
// Each factory declares exactly one of:
//   - value: returned as-is
//   - template: a pkg/template expression string rendered per value
//   - expr: an expr-lang expression over Target, Path, Type, Depth, Default,
//     HasDefault, Faker, Builtin() and Random()
//
// Files are checked against a JSON schema before decoding, ${VAR} and
// ${VAR:-default} references are expanded, and QUERYGEN_* variables
// override individual settings via File.ApplyEnv.
package config
