// Package faker produces plausible fake values from an injectable random source.
//
// A Faker built with a seeded *rand.Rand is fully deterministic, which is what
// tests rely on. A Faker built with nil uses the global math/rand/v2 source.
// A Faker is not safe for concurrent use when its source is seeded.
package faker

import (
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Faker generates fake values.
type Faker struct {
	rng *mathrand.Rand
}

// New returns a Faker drawing from rng, or from the global source when rng is nil.
func New(rng *mathrand.Rand) *Faker {
	return &Faker{rng: rng}
}

// NewSeeded returns a deterministic Faker.
func NewSeeded(seed uint64) *Faker {
	return New(NewRand(seed))
}

// NewRand returns a seeded PCG source, the generator used across the project.
func NewRand(seed uint64) *mathrand.Rand {
	return mathrand.New(mathrand.NewPCG(seed, 0))
}

// Rand returns the underlying source, nil for the global one.
func (f *Faker) Rand() *mathrand.Rand {
	return f.rng
}

// IntN returns a random int in [0, n).
func (f *Faker) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if f.rng != nil {
		return f.rng.IntN(n)
	}
	return mathrand.IntN(n)
}

// Float64 returns a random float64 in [0, 1).
func (f *Faker) Float64() float64 {
	if f.rng != nil {
		return f.rng.Float64()
	}
	return mathrand.Float64()
}

// Int returns a random int in [min, max]. It returns min when max < min.
func (f *Faker) Int(min, max int) int {
	if max < min {
		return min
	}
	return min + f.IntN(max-min+1)
}

// Float returns a random float in [min, max) rounded to precision decimals.
func (f *Faker) Float(min, max float64, precision int) float64 {
	if max < min {
		return min
	}
	v := min + f.Float64()*(max-min)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', precision, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

// Bool returns a random boolean.
func (f *Faker) Bool() bool {
	return f.IntN(2) == 1
}

func (f *Faker) pick(list []string) string {
	return list[f.IntN(len(list))]
}

// Word returns a random word.
func (f *Faker) Word() string { return f.pick(words) }

// Sentence returns a random sentence.
func (f *Faker) Sentence() string { return f.pick(sentences) }

// FirstName returns a random first name.
func (f *Faker) FirstName() string { return f.pick(firstNames) }

// LastName returns a random last name.
func (f *Faker) LastName() string { return f.pick(lastNames) }

// Name returns a random full name.
func (f *Faker) Name() string { return f.FirstName() + " " + f.LastName() }

// Company returns a random company name.
func (f *Faker) Company() string { return f.pick(companies) }

// Email returns a random e-mail address.
func (f *Faker) Email() string {
	return strings.ToLower(f.FirstName()) + strconv.Itoa(f.IntN(1000)) + "@" + f.pick(emailDomains)
}

// URL returns a random https URL.
func (f *Faker) URL() string {
	return "https://" + f.pick(emailDomains) + "/" + f.pick(urlPaths)
}

// Phone returns a random North American phone number.
func (f *Faker) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", f.IntN(900)+100, f.IntN(900)+100, f.IntN(10000))
}

// Address returns a random street address.
func (f *Faker) Address() string {
	idx := f.IntN(len(cities))
	return fmt.Sprintf("%d %s, %s, %s %05d", f.IntN(9999)+1, f.pick(streets), cities[idx], states[idx], f.IntN(99999))
}

// CountryCode returns a random ISO 3166 alpha-2 country code.
func (f *Faker) CountryCode() string { return f.pick(countryCodes) }

// Locale returns a random BCP 47 locale tag.
func (f *Faker) Locale() string { return f.pick(locales) }

// CurrencyCode returns a random ISO 4217 currency code.
func (f *Faker) CurrencyCode() string { return f.pick(currencyCodes) }

// Color returns a random color name.
func (f *Faker) Color() string { return f.pick(colors) }

// HexColor returns a random "#rrggbb" color.
func (f *Faker) HexColor() string {
	return fmt.Sprintf("#%02x%02x%02x", f.IntN(256), f.IntN(256), f.IntN(256))
}

// MIMEType returns a random MIME type.
func (f *Faker) MIMEType() string { return f.pick(mimeTypes) }

// IPv4 returns a random IPv4 address.
func (f *Faker) IPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d", f.IntN(256), f.IntN(256), f.IntN(256), f.IntN(256))
}

// IPv6 returns a random IPv6 address in full expanded notation.
func (f *Faker) IPv6() string {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", f.IntN(65536))
	}
	return strings.Join(groups, ":")
}

// MACAddress returns a random MAC address in uppercase hex notation.
func (f *Faker) MACAddress() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		f.IntN(256), f.IntN(256), f.IntN(256),
		f.IntN(256), f.IntN(256), f.IntN(256))
}

// UUID returns a random version 4 UUID. A seeded Faker yields a deterministic one.
func (f *Faker) UUID() string {
	if f.rng == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(randReader{f.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// AlphaNumeric returns a random alphanumeric string of length n.
func (f *Faker) AlphaNumeric(n int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[f.IntN(len(charset))]
	}
	return string(b)
}

// epoch anchors generated dates so that seeded output does not depend on the wall clock.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Time returns a random instant within ten years after 2020-01-01 UTC, at second precision.
func (f *Faker) Time() time.Time {
	const span = 10 * 365 * 24 * 60 * 60
	return epoch.Add(time.Duration(f.IntN(span)) * time.Second)
}

// DateTime returns a random RFC 3339 timestamp.
func (f *Faker) DateTime() string { return f.Time().Format(time.RFC3339) }

// Date returns a random "2006-01-02" date.
func (f *Faker) Date() string { return f.Time().Format(time.DateOnly) }

// TimeOfDay returns a random "15:04:05" time.
func (f *Faker) TimeOfDay() string { return f.Time().Format(time.TimeOnly) }

// Duration returns a random ISO 8601 duration such as "PT2H15M".
func (f *Faker) Duration() string {
	return fmt.Sprintf("PT%dH%dM", f.IntN(24), f.IntN(60))
}

// randReader adapts a math/rand/v2 source to io.Reader for uuid.NewRandomFromReader.
type randReader struct {
	rng *mathrand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(256))
	}
	return len(p), nil
}
