package querygen

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Kind is the kind of a TypeRef.
type Kind int

// Type kinds. Wrappers first, then the named kinds of the schema.
const (
	KindNonNull Kind = iota
	KindList
	KindScalar
	KindEnum
	KindObject
	KindInterface
	KindUnion
	KindInputObject
)

func (k Kind) String() string {
	switch k {
	case KindNonNull:
		return "NON_NULL"
	case KindList:
		return "LIST"
	case KindScalar:
		return "SCALAR"
	case KindEnum:
		return "ENUM"
	case KindObject:
		return "OBJECT"
	case KindInterface:
		return "INTERFACE"
	case KindUnion:
		return "UNION"
	case KindInputObject:
		return "INPUT_OBJECT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TypeRef is a resolved, wrapped GraphQL type.
// Wrapper kinds carry OfType; named kinds carry Def.
type TypeRef struct {
	Kind   Kind
	OfType *TypeRef
	Def    *ast.Definition

	ast *ast.Type
}

// String returns the canonical wrapped type text, e.g. "[OddNumber!]!".
func (t *TypeRef) String() string {
	return t.ast.String()
}

// AST returns the gqlparser type this reference was built from.
func (t *TypeRef) AST() *ast.Type {
	return t.ast
}

// Named returns the innermost named type.
func (t *TypeRef) Named() *TypeRef {
	for t.OfType != nil {
		t = t.OfType
	}
	return t
}

// Nullable reports whether the outermost wrapper accepts null.
func (t *TypeRef) Nullable() bool {
	return t.Kind != KindNonNull
}

// ResolveType builds a TypeRef from a gqlparser type, looking up named types in the schema.
// A NonNull gqlparser type yields a NON_NULL wrapper around the same type without the flag.
func ResolveType(schema *ast.Schema, typ *ast.Type) (*TypeRef, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnknownType)
	}

	if typ.NonNull {
		inner := *typ
		inner.NonNull = false
		of, err := ResolveType(schema, &inner)
		if err != nil {
			return nil, err
		}
		return &TypeRef{Kind: KindNonNull, OfType: of, ast: typ}, nil
	}

	if typ.Elem != nil {
		of, err := ResolveType(schema, typ.Elem)
		if err != nil {
			return nil, err
		}
		return &TypeRef{Kind: KindList, OfType: of, ast: typ}, nil
	}

	def := schema.Types[typ.NamedType]
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ.NamedType)
	}

	var kind Kind
	switch def.Kind {
	case ast.Scalar:
		kind = KindScalar
	case ast.Enum:
		kind = KindEnum
	case ast.Object:
		kind = KindObject
	case ast.Interface:
		kind = KindInterface
	case ast.Union:
		kind = KindUnion
	case ast.InputObject:
		kind = KindInputObject
	default:
		return nil, fmt.Errorf("%w: %s has unsupported kind %s", ErrUnknownType, def.Name, def.Kind)
	}
	return &TypeRef{Kind: kind, Def: def, ast: typ}, nil
}
