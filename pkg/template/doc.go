// Package template evaluates the {{expression}} strings used by
// config-declared factories, e.g. "{{faker.word}}-{{target}}".
//
// Templates are compiled once with Engine.Compile, which rejects unknown
// expressions, and rendered per generated value against a Context describing
// the argument being generated.
//
// # Context Variables
//
//   - {{target}} - Argument or input field name
//   - {{path}} - Path from the operation root, e.g. "person$filter.name"
//   - {{type}} - Wrapped GraphQL type, e.g. "[String!]"
//   - {{depth}} - Selection depth of the owning field
//   - {{default}} - Schema default value, empty when none is declared
//   - {{hasDefault}} - "true" when the schema declares a default
//
// # Random Values
//
//   - {{uuid}} - Random UUID v4
//   - {{uuid.short}} - First 8 characters of a UUID
//   - {{random.int}} - Random integer 0-100
//   - {{random.int(min, max)}} - Random integer in range [min, max]
//   - {{random.float}} - Random float 0.0-1.0
//   - {{random.float(min, max)}} - Random float in range, 2 decimals
//   - {{random.float(min, max, precision)}} - Random float with decimal precision
//   - {{random.string}} - Random 10-character alphanumeric string
//   - {{random.string(N)}} - Random N-character alphanumeric string
//   - {{faker.name}}, {{faker.email}}, {{faker.dateTime}}, ... - see fakerFuncs
//   - {{now}} - Current time in RFC3339 format
//   - {{timestamp}} - Current Unix timestamp
//
// All random expressions draw from Context.Rand, so a seeded context renders
// the same output every time.
//
// # Functions
//
//   - {{upper(value)}} - Convert to uppercase
//   - {{lower(value)}} - Convert to lowercase
//   - {{default(value, "fallback")}} - Use fallback if value is empty
//
// Function arguments are either quoted literals or expressions.
//
// # Sequences
//
//   - {{sequence("name")}} - Auto-incrementing counter starting at 1
//   - {{sequence("name", start)}} - Auto-incrementing counter starting at start
//
// Each named sequence is independent and persists for the lifetime of the
// engine's SequenceStore.
//
// # Typed Values
//
// Template.Value keeps the type of a template made of exactly one expression,
// so "{{random.int(1, 9)}}" can feed an Int argument directly.
package template
