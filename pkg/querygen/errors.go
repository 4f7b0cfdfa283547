package querygen

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnresolvedScalar is returned when no factory can produce a value for a scalar.
	ErrUnresolvedScalar = errors.New("unresolved scalar")

	// ErrUnknownType is returned when a type referenced by a field is missing from the schema.
	ErrUnknownType = errors.New("unknown type")
)

// UnresolvedScalarError reports a scalar that neither a configured factory nor
// a built-in default can generate. Its message carries ready-to-paste factory
// snippets for both Go code and the querygen config file.
type UnresolvedScalarError struct {
	Scalar string
	Path   string
}

func (e *UnresolvedScalarError) Error() string {
	return fmt.Sprintf(`Cannot generate a random value for scalar '%s'. Provide a factory for it, for instance in Go:

  querygen.Factories{
    %q: func(ctx querygen.FactoryContext) any { return generateRandomCustomScalar() },
  }

or in querygen.yaml:

  factories:
    %s:
      value: "..."`, e.Scalar, e.Scalar, e.Scalar)
}

// Is makes errors.Is(err, ErrUnresolvedScalar) hold.
func (e *UnresolvedScalarError) Is(target error) bool {
	return target == ErrUnresolvedScalar
}
