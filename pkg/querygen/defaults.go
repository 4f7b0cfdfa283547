package querygen

import (
	"strings"
	"unicode"

	"github.com/getmockd/querygen/pkg/faker"
)

// DefaultFactory is a built-in factory for a family of scalar names.
type DefaultFactory struct {
	// Family is matched case-insensitively as a substring of the bare type name.
	Family string
	// Word restricts the match to a whole word of the name, so "id" matches
	// ID, UserID and Node_Id but not Void or Grid.
	Word    bool
	Factory Factory
}

func fake(ctx FactoryContext) *faker.Faker {
	return faker.New(ctx.Rand)
}

// DefaultFactories is the built-in table, scanned in order. More specific
// families come before the families they contain ("datetime" before "date" and
// "time", "bigint" before "int").
var DefaultFactories = []DefaultFactory{
	{Family: "datetime", Factory: func(ctx FactoryContext) any { return fake(ctx).DateTime() }},
	{Family: "timestamp", Factory: func(ctx FactoryContext) any { return fake(ctx).DateTime() }},
	{Family: "instant", Factory: func(ctx FactoryContext) any { return fake(ctx).DateTime() }},
	{Family: "date", Factory: func(ctx FactoryContext) any { return fake(ctx).Date() }},
	{Family: "duration", Factory: func(ctx FactoryContext) any { return fake(ctx).Duration() }},
	{Family: "time", Factory: func(ctx FactoryContext) any { return fake(ctx).TimeOfDay() }},
	{Family: "uuid", Factory: func(ctx FactoryContext) any { return fake(ctx).UUID() }},
	{Family: "guid", Factory: func(ctx FactoryContext) any { return fake(ctx).UUID() }},
	{Family: "email", Factory: func(ctx FactoryContext) any { return fake(ctx).Email() }},
	{Family: "url", Factory: func(ctx FactoryContext) any { return fake(ctx).URL() }},
	{Family: "uri", Factory: func(ctx FactoryContext) any { return fake(ctx).URL() }},
	{Family: "ipv6", Factory: func(ctx FactoryContext) any { return fake(ctx).IPv6() }},
	{Family: "ipv4", Factory: func(ctx FactoryContext) any { return fake(ctx).IPv4() }},
	{Family: "ipaddress", Factory: func(ctx FactoryContext) any { return fake(ctx).IPv4() }},
	{Family: "mac", Factory: func(ctx FactoryContext) any { return fake(ctx).MACAddress() }},
	{Family: "phone", Factory: func(ctx FactoryContext) any { return fake(ctx).Phone() }},
	{Family: "locale", Factory: func(ctx FactoryContext) any { return fake(ctx).Locale() }},
	{Family: "country", Factory: func(ctx FactoryContext) any { return fake(ctx).CountryCode() }},
	{Family: "currency", Factory: func(ctx FactoryContext) any { return fake(ctx).CurrencyCode() }},
	{Family: "hexcolor", Factory: func(ctx FactoryContext) any { return fake(ctx).HexColor() }},
	{Family: "color", Factory: func(ctx FactoryContext) any { return fake(ctx).Color() }},
	{Family: "json", Factory: func(ctx FactoryContext) any { return map[string]any{} }},
	{Family: "bigdecimal", Factory: func(ctx FactoryContext) any { return fake(ctx).Float(0, 1000, 2) }},
	{Family: "decimal", Factory: func(ctx FactoryContext) any { return fake(ctx).Float(0, 1000, 2) }},
	{Family: "bigint", Factory: func(ctx FactoryContext) any { return fake(ctx).Int(0, 100000) }},
	{Family: "long", Factory: func(ctx FactoryContext) any { return fake(ctx).Int(0, 100000) }},
	{Family: "short", Factory: func(ctx FactoryContext) any { return fake(ctx).Int(0, 100) }},
	{Family: "byte", Factory: func(ctx FactoryContext) any { return fake(ctx).Int(0, 127) }},
	{Family: "integer", Factory: func(ctx FactoryContext) any { return fake(ctx).Int(0, 100) }},
	{Family: "int", Word: true, Factory: func(ctx FactoryContext) any { return fake(ctx).Int(0, 100) }},
	{Family: "float", Factory: func(ctx FactoryContext) any { return fake(ctx).Float(0, 100, 2) }},
	{Family: "double", Factory: func(ctx FactoryContext) any { return fake(ctx).Float(0, 100, 2) }},
	{Family: "boolean", Factory: func(ctx FactoryContext) any { return fake(ctx).Bool() }},
	{Family: "bool", Factory: func(ctx FactoryContext) any { return fake(ctx).Bool() }},
	{Family: "char", Factory: func(ctx FactoryContext) any { return fake(ctx).AlphaNumeric(1) }},
	{Family: "id", Word: true, Factory: func(ctx FactoryContext) any { return fake(ctx).UUID() }},
	{Family: "string", Factory: defaultString},
}

// defaultString derives a string from the target name where the name hints at
// a well-known format, and falls back to a random word.
func defaultString(ctx FactoryContext) any {
	f := fake(ctx)
	name := strings.ToLower(ctx.TargetName)
	switch {
	case strings.Contains(name, "email"):
		return f.Email()
	case strings.Contains(name, "url"), strings.Contains(name, "uri"), strings.Contains(name, "link"):
		return f.URL()
	case strings.Contains(name, "phone"):
		return f.Phone()
	case strings.Contains(name, "firstname"):
		return f.FirstName()
	case strings.Contains(name, "lastname"):
		return f.LastName()
	case name == "name", strings.HasSuffix(name, "name"):
		return f.Name()
	case strings.Contains(name, "address"):
		return f.Address()
	case strings.Contains(name, "company"):
		return f.Company()
	case strings.Contains(name, "description"), strings.Contains(name, "comment"), strings.Contains(name, "message"):
		return f.Sentence()
	default:
		return f.Word()
	}
}

// lookupDefault finds the built-in factory for a bare type name.
func lookupDefault(name string) (Factory, bool) {
	lower := strings.ToLower(name)
	var words []string
	for _, d := range DefaultFactories {
		if !d.Word {
			if strings.Contains(lower, d.Family) {
				return d.Factory, true
			}
			continue
		}
		if words == nil {
			words = nameWords(name)
		}
		for _, w := range words {
			if w == d.Family {
				return d.Factory, true
			}
		}
	}
	return nil, false
}

// nameWords splits a type name into lower-case words at case changes,
// letter/digit changes and separators: "UUIDString" gives uuid and string,
// "Int64" gives int and 64.
func nameWords(name string) []string {
	runes := []rune(name)
	words := []string{}
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, strings.ToLower(string(runes[start:end])))
		}
	}
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' {
			flush(i)
			start = i + 1
			continue
		}
		if i == start {
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsDigit(r) != unicode.IsDigit(prev):
		case unicode.IsUpper(r) && !unicode.IsUpper(prev):
		case unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		default:
			continue
		}
		flush(i)
		start = i
	}
	flush(len(runes))
	return words
}
