// Package lookup maps the raw codes found in ECDC vaccine tracker exports to
// display names. The tables are fixed at build time; codes that are not in a
// table resolve to themselves.
package lookup

// Table is a read-only code to display name mapping.
type Table struct {
	names map[string]string
}

// Resolve returns the display name for code, or code itself when the table
// has no entry for it.
func (t Table) Resolve(code string) string {
	if name, ok := t.names[code]; ok {
		return name
	}
	return code
}

// Has reports whether code has an entry in the table.
func (t Table) Has(code string) bool {
	_, ok := t.names[code]
	return ok
}

// VaccineDisplayName maps ECDC vaccine codes to product names.
var VaccineDisplayName = Table{names: map[string]string{
	"COM":   "Pfizer/BioNTech",
	"MOD":   "Moderna",
	"CN":    "SinoPharm",
	"SIN":   "Coronavac – Sinovac",
	"JANSS": "J&J Janssen",
	"SPU":   "Sputnik V",
	"AZ":    "AstraZeneca",
	"UNK":   "Unknown",
}}

// CountryDisplayName maps ECDC reporting-country codes (ISO 3166 alpha-2,
// except EL for Greece and UK for the United Kingdom) to country names.
// The labels match the historical reports, spellings included.
var CountryDisplayName = Table{names: map[string]string{
	"AT": "Austria",
	"BE": "Belgium",
	"BG": "Bulgaria",
	"CH": "Switzerland",
	"CY": "Cypress",
	"CZ": "Czechia",
	"DE": "Germany",
	"DK": "Denmark",
	"EE": "Estonia",
	"EL": "Greece",
	"ES": "Spain",
	"FI": "Finland",
	"FR": "France",
	"HR": "Croatia",
	"HU": "Hungary",
	"IE": "Ireland",
	"IS": "Iceland",
	"IT": "Italy",
	"LI": "Leichtenstein",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"LV": "Latvia",
	"MT": "Malta",
	"NL": "Netherlands",
	"NO": "Norway",
	"PL": "Poland",
	"PT": "Portugal",
	"RO": "Romania",
	"SE": "Sweden",
	"SI": "Slovenia",
	"SK": "Slovakia",
	"UK": "United Kingdom",
}}

// Vaccine resolves a vaccine code against VaccineDisplayName.
func Vaccine(code string) string {
	return VaccineDisplayName.Resolve(code)
}

// Country resolves a reporting-country code against CountryDisplayName.
func Country(code string) string {
	return CountryDisplayName.Resolve(code)
}
