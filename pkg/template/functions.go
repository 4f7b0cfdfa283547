package template

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/querygen/pkg/faker"
)

// fakerFuncs maps {{faker.<name>}} to generators. Names accept both the
// camelCase and the snake_case spelling.
var fakerFuncs = map[string]func(f *faker.Faker) any{
	"name":         func(f *faker.Faker) any { return f.Name() },
	"firstName":    func(f *faker.Faker) any { return f.FirstName() },
	"lastName":     func(f *faker.Faker) any { return f.LastName() },
	"email":        func(f *faker.Faker) any { return f.Email() },
	"url":          func(f *faker.Faker) any { return f.URL() },
	"phone":        func(f *faker.Faker) any { return f.Phone() },
	"address":      func(f *faker.Faker) any { return f.Address() },
	"company":      func(f *faker.Faker) any { return f.Company() },
	"word":         func(f *faker.Faker) any { return f.Word() },
	"sentence":     func(f *faker.Faker) any { return f.Sentence() },
	"uuid":         func(f *faker.Faker) any { return f.UUID() },
	"boolean":      func(f *faker.Faker) any { return f.Bool() },
	"ipv4":         func(f *faker.Faker) any { return f.IPv4() },
	"ipv6":         func(f *faker.Faker) any { return f.IPv6() },
	"macAddress":   func(f *faker.Faker) any { return f.MACAddress() },
	"countryCode":  func(f *faker.Faker) any { return f.CountryCode() },
	"locale":       func(f *faker.Faker) any { return f.Locale() },
	"currencyCode": func(f *faker.Faker) any { return f.CurrencyCode() },
	"color":        func(f *faker.Faker) any { return f.Color() },
	"hexColor":     func(f *faker.Faker) any { return f.HexColor() },
	"mimeType":     func(f *faker.Faker) any { return f.MIMEType() },
	"date":         func(f *faker.Faker) any { return f.Date() },
	"dateTime":     func(f *faker.Faker) any { return f.DateTime() },
	"time":         func(f *faker.Faker) any { return f.TimeOfDay() },
	"duration":     func(f *faker.Faker) any { return f.Duration() },
}

func lookupFaker(name string) (func(f *faker.Faker) any, bool) {
	if fn, ok := fakerFuncs[name]; ok {
		return fn, true
	}
	fn, ok := fakerFuncs[snakeToCamel(name)]
	return fn, ok
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// Random functions

func funcRandomInt(ctx *Context, min, max int) any {
	return faker.New(ctxRNG(ctx)).Int(min, max)
}

func funcRandomFloat(ctx *Context, min, max float64, precision int) any {
	return faker.New(ctxRNG(ctx)).Float(min, max, precision)
}

func funcRandomString(ctx *Context, length int) any {
	return faker.New(ctxRNG(ctx)).AlphaNumeric(length)
}

func funcUUIDShort(ctx *Context) any {
	return faker.New(ctxRNG(ctx)).UUID()[:8]
}

// Time functions

func funcNow() any {
	return time.Now().UTC().Format(time.RFC3339)
}

func funcTimestamp() any {
	return time.Now().Unix()
}

// String functions

func funcUpper(s string) string {
	return strings.ToUpper(s)
}

func funcLower(s string) string {
	return strings.ToLower(s)
}

// funcDefault returns value if non-empty, otherwise returns fallback.
func funcDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// formatValue converts an evaluated value to its template text.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
