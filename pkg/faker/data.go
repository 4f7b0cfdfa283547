package faker

// =============================================================================
// Faker data: People & Text
// =============================================================================

var firstNames = []string{"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona"}

var lastNames = []string{"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson"}

var words = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta", "lambda", "sigma", "omega"}

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Lorem ipsum dolor sit amet.",
	"Hello world from the documentation site.",
	"Generated value for an example query.",
	"System status nominal.",
}

var companies = []string{"Acme Corp", "Globex Inc", "Initech", "Umbrella Corp", "Stark Industries", "Wayne Enterprises", "Cyberdyne Systems", "Tyrell Corp"}

var streets = []string{"Main St", "Oak Ave", "Elm St", "Park Blvd", "Cedar Ln", "Maple Dr", "Pine Rd", "Lake Way"}

var cities = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Seattle", "Denver", "Boston"}

var states = []string{"NY", "CA", "IL", "TX", "AZ", "WA", "CO", "MA"}

// =============================================================================
// Faker data: Internet
// =============================================================================

var emailDomains = []string{"example.com", "test.com", "mock.io", "demo.org"}

var urlPaths = []string{"docs", "api", "users", "products", "orders", "blog", "about"}

var locales = []string{"en-US", "en-GB", "fr-CA", "fr-FR", "de-DE", "es-ES", "ja-JP", "pt-BR"}

var mimeTypes = []string{
	"application/json", "application/xml", "application/pdf",
	"application/zip", "application/octet-stream",
	"text/html", "text/plain", "text/csv",
	"image/png", "image/jpeg", "image/svg+xml",
}

// =============================================================================
// Faker data: Finance & Commerce
// =============================================================================

var currencyCodes = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY",
	"SEK", "NZD", "MXN", "SGD", "HKD", "NOK", "KRW", "TRY",
	"INR", "BRL", "ZAR",
}

var colors = []string{
	"Crimson", "Azure", "Emerald", "Ivory", "Coral",
	"Indigo", "Amber", "Jade", "Scarlet", "Turquoise",
	"Lavender", "Maroon", "Teal", "Orchid", "Cyan",
}

var countryCodes = []string{"US", "CA", "GB", "FR", "DE", "ES", "IT", "JP", "BR", "AU"}
