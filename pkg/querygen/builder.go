package querygen

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoRootField is returned when GenerateMany is called without fields.
var ErrNoRootField = errors.New("no root field to generate")

const typenameField = "__typename"

// Generate builds an operation selecting field, together with values for every
// variable the operation declares.
func Generate(schema *ast.Schema, field *ast.FieldDefinition, cfg Config) (*GeneratedQuery, error) {
	return GenerateMany(schema, []*ast.FieldDefinition{field}, cfg)
}

// GenerateMany builds one operation selecting every field in fields. Fields
// sharing a name are aliased so that each keeps its own arguments.
func GenerateMany(schema *ast.Schema, fields []*ast.FieldDefinition, cfg Config) (*GeneratedQuery, error) {
	if len(fields) == 0 {
		return nil, ErrNoRootField
	}

	b := &builder{
		gen:       newGenerator(schema, cfg),
		variables: make(map[string]any),
		taken:     make(map[string]bool),
	}

	op := &ast.OperationDefinition{
		Operation: operationFor(cfg.QueryType),
		Name:      cfg.QueryName,
	}
	if op.Name == "" {
		op.Name = defaultOperationName(op.Operation, fields[0].Name)
	}

	aliases := make(map[string]bool)
	for _, def := range fields {
		f, err := b.field(def, GenerationContext{}, true)
		if err != nil {
			return nil, err
		}
		addSelection(&op.SelectionSet, f, aliases)
	}
	op.VariableDefinitions = b.definitions

	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatQueryDocument(&ast.QueryDocument{
		Operations: ast.OperationList{op},
	})

	return &GeneratedQuery{
		Query:     strings.TrimSuffix(buf.String(), "\n"),
		Variables: b.variables,
	}, nil
}

// builder accumulates the selection tree and the operation variables.
type builder struct {
	gen         *generator
	definitions ast.VariableDefinitionList
	variables   map[string]any
	taken       map[string]bool
}

// field builds the selection of def below parent. It returns nil when the
// field is left out: object fields past the depth bound or with nothing to select.
func (b *builder) field(def *ast.FieldDefinition, parent GenerationContext, root bool) (*ast.Field, error) {
	ctx := parent.withField(def.Name)

	t, err := ResolveType(b.gen.schema, def.Type)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", ctx.Path, err)
	}
	named := t.Named()

	composite := false
	switch named.Kind {
	case KindScalar, KindEnum:
	case KindObject, KindInterface, KindUnion:
		composite = true
		if !root && ctx.Depth+1 > b.gen.maxDepth {
			return nil, nil
		}
	case KindInputObject, KindList, KindNonNull:
		return nil, fmt.Errorf("%w: field %s resolves to %s", ErrUnknownType, ctx.Path, named.Kind)
	default:
		return nil, fmt.Errorf("%w: field %s has unhandled kind %s", ErrUnknownType, ctx.Path, named.Kind)
	}

	mark := len(b.definitions)
	f := &ast.Field{Name: def.Name, Definition: def}
	if err := b.arguments(f, def, ctx); err != nil {
		return nil, err
	}
	if !composite {
		return f, nil
	}

	if named.Kind != KindUnion && ctx.Depth+1 <= b.gen.maxDepth {
		if err := b.selectionSet(f, named.Def, ctx); err != nil {
			return nil, err
		}
	}
	if len(f.SelectionSet) == 0 {
		if !root && named.Kind != KindUnion {
			b.rollback(mark)
			return nil, nil
		}
		f.SelectionSet = ast.SelectionSet{&ast.Field{Name: typenameField}}
	}
	return f, nil
}

func (b *builder) selectionSet(f *ast.Field, def *ast.Definition, ctx GenerationContext) error {
	aliases := make(map[string]bool, len(def.Fields))
	for _, child := range def.Fields {
		if strings.HasPrefix(child.Name, "__") {
			continue
		}
		sel, err := b.field(child, ctx, false)
		if err != nil {
			return err
		}
		if sel != nil {
			addSelection(&f.SelectionSet, sel, aliases)
		}
	}
	return nil
}

// arguments generates a value for every argument of def and binds each one to
// a fresh operation variable.
func (b *builder) arguments(f *ast.Field, def *ast.FieldDefinition, ctx GenerationContext) error {
	params, err := b.gen.argsForField(def, ctx)
	if err != nil {
		return err
	}
	for i, param := range params {
		name := uniqueName(param.Name, b.taken)
		b.taken[name] = true
		b.variables[name] = param.Value
		b.definitions = append(b.definitions, &ast.VariableDefinition{
			Variable: name,
			Type:     def.Arguments[i].Type,
		})
		f.Arguments = append(f.Arguments, &ast.Argument{
			Name:  param.Name,
			Value: &ast.Value{Kind: ast.Variable, Raw: name},
		})
	}
	return nil
}

// rollback drops the variables declared since mark.
func (b *builder) rollback(mark int) {
	for _, d := range b.definitions[mark:] {
		delete(b.taken, d.Variable)
		delete(b.variables, d.Variable)
	}
	b.definitions = b.definitions[:mark]
}

// addSelection appends f, aliasing it when a sibling already answers under the same name.
func addSelection(set *ast.SelectionSet, f *ast.Field, taken map[string]bool) {
	name := uniqueName(f.Name, taken)
	taken[name] = true
	if name != f.Name {
		f.Alias = name
	}
	*set = append(*set, f)
}

// uniqueName returns base when free, else base2, base3, ...
func uniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		name := base + strconv.Itoa(i)
		if !taken[name] {
			return name
		}
	}
}

func operationFor(t QueryType) ast.Operation {
	switch t {
	case QueryTypeMutation:
		return ast.Mutation
	case QueryTypeSubscription:
		return ast.Subscription
	default:
		return ast.Query
	}
}

func defaultOperationName(op ast.Operation, field string) string {
	return string(op) + cases.Title(language.Und, cases.NoLower).String(field)
}
