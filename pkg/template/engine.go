package template

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/querygen/pkg/faker"
)

// ErrUnknownExpression is returned when a template contains an expression the engine does not know.
var ErrUnknownExpression = errors.New("unknown template expression")

// Engine compiles templates. An Engine is safe for concurrent use; its
// SequenceStore provides its own synchronization.
type Engine struct {
	sequences *SequenceStore
}

// New creates a new template engine with its own sequence store.
func New() *Engine {
	return &Engine{sequences: NewSequenceStore()}
}

// NewWithSequences creates a template engine sharing store.
func NewWithSequences(store *SequenceStore) *Engine {
	return &Engine{sequences: store}
}

// templateRegex matches {{expression}} patterns with optional whitespace.
var templateRegex = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// Compiled patterns for function-call syntax (parenthesized arguments).
var (
	// random.int or random.int(min, max)
	randomIntPattern = regexp.MustCompile(`^random\.int(?:\((-?\d+),\s*(-?\d+)\))?$`)
	// random.float or random.float(min, max) or random.float(min, max, precision)
	randomFloatPattern = regexp.MustCompile(`^random\.float(?:\((-?[0-9.]+),\s*(-?[0-9.]+)(?:,\s*(\d+))?\))?$`)
	// random.string or random.string(length)
	randomStringPattern = regexp.MustCompile(`^random\.string(?:\((\d+)\))?$`)
	// sequence("name") or sequence("name", start)
	sequencePattern = regexp.MustCompile(`^sequence\("([^"]+)"(?:,\s*(-?\d+))?\)$`)
	// faker.type
	fakerPattern = regexp.MustCompile(`^faker\.(\w+)$`)
	// upper(value) or lower(value) or default(value, fallback)
	funcCallPattern = regexp.MustCompile(`^(\w+)\((.+)\)$`)
)

// evalFunc evaluates one compiled expression.
type evalFunc func(ctx *Context) any

type segment struct {
	literal string
	eval    evalFunc
}

// Template is a compiled template.
type Template struct {
	source   string
	segments []segment
}

// Source returns the template text.
func (t *Template) Source() string {
	return t.source
}

// Compile parses every {{expression}} of src. Unknown expressions are an error.
func (e *Engine) Compile(src string) (*Template, error) {
	t := &Template{source: src}
	last := 0
	for _, loc := range templateRegex.FindAllStringSubmatchIndex(src, -1) {
		if loc[0] > last {
			t.segments = append(t.segments, segment{literal: src[last:loc[0]]})
		}
		expr := strings.TrimSpace(src[loc[2]:loc[3]])
		eval, err := e.parse(expr)
		if err != nil {
			return nil, err
		}
		t.segments = append(t.segments, segment{eval: eval})
		last = loc[1]
	}
	if last < len(src) {
		t.segments = append(t.segments, segment{literal: src[last:]})
	}
	return t, nil
}

// Execute renders the template as text.
func (t *Template) Execute(ctx *Context) string {
	var b strings.Builder
	for _, s := range t.segments {
		if s.eval == nil {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(formatValue(s.eval(ctx)))
	}
	return b.String()
}

// Value renders the template, keeping the type of the result when the whole
// template is a single expression: "{{random.int(1, 9)}}" yields an int and
// "{{default}}" the schema default as declared.
func (t *Template) Value(ctx *Context) any {
	if len(t.segments) == 1 && t.segments[0].eval != nil {
		return t.segments[0].eval(ctx)
	}
	return t.Execute(ctx)
}

// Process compiles and renders src in one step.
func (e *Engine) Process(src string, ctx *Context) (string, error) {
	t, err := e.Compile(src)
	if err != nil {
		return "", err
	}
	return t.Execute(ctx), nil
}

// parse compiles a single template expression.
func (e *Engine) parse(expr string) (evalFunc, error) {
	// Simple built-in variables (no arguments)
	switch expr {
	case "uuid":
		return func(ctx *Context) any { return faker.New(ctxRNG(ctx)).UUID() }, nil
	case "uuid.short":
		return funcUUIDShort, nil
	case "now":
		return func(*Context) any { return funcNow() }, nil
	case "timestamp":
		return func(*Context) any { return funcTimestamp() }, nil
	case "target":
		return func(ctx *Context) any { return contextField(ctx, func(c *Context) any { return c.Target }) }, nil
	case "path":
		return func(ctx *Context) any { return contextField(ctx, func(c *Context) any { return c.Path }) }, nil
	case "type":
		return func(ctx *Context) any { return contextField(ctx, func(c *Context) any { return c.Type }) }, nil
	case "depth":
		return func(ctx *Context) any { return contextField(ctx, func(c *Context) any { return c.Depth }) }, nil
	case "default":
		return func(ctx *Context) any { return contextField(ctx, func(c *Context) any { return c.Default }) }, nil
	case "hasDefault":
		return func(ctx *Context) any { return contextField(ctx, func(c *Context) any { return c.HasDefault }) }, nil
	}

	if matches := randomIntPattern.FindStringSubmatch(expr); matches != nil {
		min, max := 0, 100
		if matches[1] != "" {
			min, _ = strconv.Atoi(matches[1])
			max, _ = strconv.Atoi(matches[2])
		}
		if min > max {
			return nil, fmt.Errorf("%w: %s: min is greater than max", ErrUnknownExpression, expr)
		}
		return func(ctx *Context) any { return funcRandomInt(ctx, min, max) }, nil
	}

	if matches := randomFloatPattern.FindStringSubmatch(expr); matches != nil {
		min, max, precision := 0.0, 1.0, 6
		if matches[1] != "" {
			var err1, err2 error
			min, err1 = strconv.ParseFloat(matches[1], 64)
			max, err2 = strconv.ParseFloat(matches[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownExpression, expr)
			}
			precision = 2
			if matches[3] != "" {
				precision, _ = strconv.Atoi(matches[3])
			}
		}
		return func(ctx *Context) any { return funcRandomFloat(ctx, min, max, precision) }, nil
	}

	if matches := randomStringPattern.FindStringSubmatch(expr); matches != nil {
		length := 10
		if matches[1] != "" {
			if n, err := strconv.Atoi(matches[1]); err == nil && n > 0 {
				length = n
			}
		}
		return func(ctx *Context) any { return funcRandomString(ctx, length) }, nil
	}

	if matches := sequencePattern.FindStringSubmatch(expr); matches != nil {
		name := matches[1]
		start := int64(1)
		if matches[2] != "" {
			start, _ = strconv.ParseInt(matches[2], 10, 64)
		}
		return func(*Context) any { return e.sequences.Next(name, start) }, nil
	}

	if matches := fakerPattern.FindStringSubmatch(expr); matches != nil {
		fn, ok := lookupFaker(matches[1])
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExpression, expr)
		}
		return func(ctx *Context) any { return fn(faker.New(ctxRNG(ctx))) }, nil
	}

	if matches := funcCallPattern.FindStringSubmatch(expr); matches != nil {
		return e.parseCall(expr, matches[1], matches[2])
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownExpression, expr)
}

// parseCall handles upper(value), lower(value) and default(value, fallback).
func (e *Engine) parseCall(expr, name, argsStr string) (evalFunc, error) {
	switch name {
	case "upper", "lower":
		arg, err := e.parseValue(argsStr)
		if err != nil {
			return nil, err
		}
		transform := funcUpper
		if name == "lower" {
			transform = funcLower
		}
		return func(ctx *Context) any { return transform(formatValue(arg(ctx))) }, nil
	case "default":
		args := splitFuncArgs(argsStr)
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s: default takes two arguments", ErrUnknownExpression, expr)
		}
		arg, err := e.parseValue(args[0])
		if err != nil {
			return nil, err
		}
		fallback := parseStringArg(args[1])
		return func(ctx *Context) any { return funcDefault(formatValue(arg(ctx)), fallback) }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownExpression, expr)
}

// parseValue compiles a function argument: a quoted literal or an expression.
func (e *Engine) parseValue(ref string) (evalFunc, error) {
	ref = strings.TrimSpace(ref)
	if isQuoted(ref) {
		lit := ref[1 : len(ref)-1]
		return func(*Context) any { return lit }, nil
	}
	return e.parse(ref)
}

func contextField(ctx *Context, get func(*Context) any) any {
	if ctx == nil {
		return nil
	}
	return get(ctx)
}

func isQuoted(s string) bool {
	return len(s) >= 2 &&
		((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\''))
}

// parseStringArg removes surrounding quotes from a string argument if present.
func parseStringArg(s string) string {
	s = strings.TrimSpace(s)
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// splitFuncArgs splits function arguments separated by commas,
// respecting quoted strings.
func splitFuncArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			current.WriteByte(ch)
			if ch == quoteChar {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteChar = ch
			current.WriteByte(ch)
		case ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}
