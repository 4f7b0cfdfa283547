package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// ErrInvalidIntrospection is returned when introspection JSON has no usable __schema.
var ErrInvalidIntrospection = errors.New("invalid introspection result")

// schemaPath finds __schema at any depth, so both the bare {"__schema": ...}
// form and a {"data": {"__schema": ...}} response are accepted.
var schemaPath = jp.MustParseString("$..__schema")

type introspectionSchema struct {
	QueryType        *namedRef           `json:"queryType"`
	MutationType     *namedRef           `json:"mutationType"`
	SubscriptionType *namedRef           `json:"subscriptionType"`
	Types            []introspectionType `json:"types"`
}

type namedRef struct {
	Name string `json:"name"`
}

type introspectionType struct {
	Kind          string               `json:"kind"`
	Name          string               `json:"name"`
	Description   *string              `json:"description"`
	Fields        []introspectionField `json:"fields"`
	InputFields   []introspectionInput `json:"inputFields"`
	Interfaces    []typeRef            `json:"interfaces"`
	EnumValues    []introspectionEnum  `json:"enumValues"`
	PossibleTypes []typeRef            `json:"possibleTypes"`
}

type introspectionField struct {
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Args        []introspectionInput `json:"args"`
	Type        typeRef              `json:"type"`
}

type introspectionInput struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Type         typeRef `json:"type"`
	DefaultValue *string `json:"defaultValue"`
}

type introspectionEnum struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *typeRef `json:"ofType"`
}

// String renders the reference as SDL type text, e.g. "[String!]!".
func (t *typeRef) String() string {
	switch t.Kind {
	case "NON_NULL":
		if t.OfType == nil {
			return ""
		}
		return t.OfType.String() + "!"
	case "LIST":
		if t.OfType == nil {
			return ""
		}
		return "[" + t.OfType.String() + "]"
	default:
		if t.Name == nil {
			return ""
		}
		return *t.Name
	}
}

// ParseIntrospection builds a Schema from the JSON result of an
// introspection query.
func ParseIntrospection(data []byte) (*Schema, error) {
	var doc any
	if err := oj.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIntrospection, err)
	}

	found := schemaPath.Get(doc)
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no __schema object", ErrInvalidIntrospection)
	}

	var is introspectionSchema
	if err := json.Unmarshal([]byte(oj.JSON(found[0])), &is); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIntrospection, err)
	}
	if is.QueryType == nil || is.QueryType.Name == "" {
		return nil, fmt.Errorf("%w: missing queryType", ErrInvalidIntrospection)
	}

	sdl, err := is.sdl()
	if err != nil {
		return nil, err
	}
	schema, gerr := gqlparser.LoadSchema(&ast.Source{Name: "introspection", Input: sdl})
	if gerr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIntrospection, gerr)
	}
	return &Schema{ast: schema, sources: []string{"introspection"}}, nil
}

// builtinScalars are declared by the gqlparser prelude.
var builtinScalars = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
}

// sdl renders the introspection result as schema definition language.
// Default values are already GraphQL literals and are emitted as given.
func (is *introspectionSchema) sdl() (string, error) {
	types := make([]introspectionType, 0, len(is.Types))
	for _, t := range is.Types {
		if strings.HasPrefix(t.Name, "__") || builtinScalars[t.Name] {
			continue
		}
		types = append(types, t)
	}
	sort.SliceStable(types, func(i, j int) bool { return types[i].Name < types[j].Name })

	var b strings.Builder
	if is.needsSchemaBlock() {
		b.WriteString("schema {\n")
		fmt.Fprintf(&b, "  query: %s\n", is.QueryType.Name)
		if is.MutationType != nil && is.MutationType.Name != "" {
			fmt.Fprintf(&b, "  mutation: %s\n", is.MutationType.Name)
		}
		if is.SubscriptionType != nil && is.SubscriptionType.Name != "" {
			fmt.Fprintf(&b, "  subscription: %s\n", is.SubscriptionType.Name)
		}
		b.WriteString("}\n\n")
	}

	for _, t := range types {
		writeDescription(&b, t.Description, "")
		switch t.Kind {
		case "SCALAR":
			fmt.Fprintf(&b, "scalar %s\n\n", t.Name)
		case "ENUM":
			fmt.Fprintf(&b, "enum %s {\n", t.Name)
			for _, v := range t.EnumValues {
				writeDescription(&b, v.Description, "  ")
				fmt.Fprintf(&b, "  %s\n", v.Name)
			}
			b.WriteString("}\n\n")
		case "UNION":
			members := make([]string, 0, len(t.PossibleTypes))
			for _, p := range t.PossibleTypes {
				members = append(members, p.String())
			}
			fmt.Fprintf(&b, "union %s = %s\n\n", t.Name, strings.Join(members, " | "))
		case "INPUT_OBJECT":
			fmt.Fprintf(&b, "input %s {\n", t.Name)
			for _, f := range t.InputFields {
				writeDescription(&b, f.Description, "  ")
				fmt.Fprintf(&b, "  %s\n", inputValueSDL(f))
			}
			b.WriteString("}\n\n")
		case "OBJECT", "INTERFACE":
			keyword := "type"
			if t.Kind == "INTERFACE" {
				keyword = "interface"
			}
			fmt.Fprintf(&b, "%s %s", keyword, t.Name)
			if len(t.Interfaces) > 0 {
				names := make([]string, 0, len(t.Interfaces))
				for _, i := range t.Interfaces {
					names = append(names, i.String())
				}
				fmt.Fprintf(&b, " implements %s", strings.Join(names, " & "))
			}
			b.WriteString(" {\n")
			for _, f := range t.Fields {
				writeDescription(&b, f.Description, "  ")
				b.WriteString("  ")
				b.WriteString(f.Name)
				if len(f.Args) > 0 {
					args := make([]string, 0, len(f.Args))
					for _, a := range f.Args {
						args = append(args, inputValueSDL(a))
					}
					fmt.Fprintf(&b, "(%s)", strings.Join(args, ", "))
				}
				fmt.Fprintf(&b, ": %s\n", f.Type.String())
			}
			b.WriteString("}\n\n")
		default:
			return "", fmt.Errorf("%w: type %s has unsupported kind %q", ErrInvalidIntrospection, t.Name, t.Kind)
		}
	}
	return b.String(), nil
}

func (is *introspectionSchema) needsSchemaBlock() bool {
	if is.QueryType.Name != "Query" {
		return true
	}
	if is.MutationType != nil && is.MutationType.Name != "" && is.MutationType.Name != "Mutation" {
		return true
	}
	return is.SubscriptionType != nil && is.SubscriptionType.Name != "" && is.SubscriptionType.Name != "Subscription"
}

func inputValueSDL(v introspectionInput) string {
	s := v.Name + ": " + v.Type.String()
	if v.DefaultValue != nil {
		s += " = " + *v.DefaultValue
	}
	return s
}

func writeDescription(b *strings.Builder, desc *string, indent string) {
	if desc == nil || *desc == "" {
		return
	}
	quoted, _ := json.Marshal(*desc)
	fmt.Fprintf(b, "%s%s\n", indent, quoted)
}
