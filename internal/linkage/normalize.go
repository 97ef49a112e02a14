// Package linkage implements the record linkage and enrichment engine: it
// decides whether a secondary record describes the same property as a
// canonical registry record, merges enrichment into the registry without
// duplication, and recomputes composite priority codes.
package linkage

import (
	"strings"
	"unicode"
)

// streetTypes are the suffix tokens that county exports commonly leave a
// trailing comma on ("123 MAIN ST, ROANOKE" vs "123 MAIN ST").
var streetTypes = []string{" ST,", " AVE,", " RD,", " DR,", " BLVD,", " LN,", " CT,", " PL,"}

// NormalizeAddress maps a raw street address to its canonical matching key.
// Total and deterministic: blank input maps to "".
func NormalizeAddress(raw string) string {
	addr := strings.ToUpper(strings.TrimSpace(raw))
	if addr == "" {
		return ""
	}
	for _, st := range streetTypes {
		addr = strings.ReplaceAll(addr, st, strings.TrimSuffix(st, ","))
	}
	addr = strings.ReplaceAll(addr, ",", " ")
	return collapseSpaces(addr)
}

// NormalizeCity maps a raw city name to its canonical matching key.
func NormalizeCity(raw string) string {
	city := strings.ToUpper(strings.TrimSpace(raw))
	if city == "" {
		return ""
	}
	city = strings.ReplaceAll(city, ".", "")
	return collapseSpaces(city)
}

// AddressCityKey builds the compound matching key "ADDRESS|CITY". When the
// city is blank it degrades to the address alone, so the same key space
// serves both the address+city and address-only strategies.
func AddressCityKey(address, city string) string {
	addr := NormalizeAddress(address)
	c := NormalizeCity(city)
	switch {
	case addr != "" && c != "":
		return addr + "|" + c
	case addr != "":
		return addr
	default:
		return ""
	}
}

// addressComponent returns the address part of a compound key.
func addressComponent(key string) string {
	if i := strings.IndexByte(key, '|'); i >= 0 {
		return key[:i]
	}
	return key
}

// NormalizeFIPS canonicalizes a jurisdiction code for comparison. Excel
// round-trips numeric codes as floats, so "51770.0" equals "51770".
func NormalizeFIPS(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// NormalizeAPN canonicalizes a parcel identifier: uppercase with dashes,
// dots, and interior whitespace removed.
func NormalizeAPN(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || s == "NAN" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || r == '.' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BaseAPN strips trailing alphabetic sub-parcel suffixes from a normalized
// APN ("1234567A" -> "1234567"). Returns "" when nothing remains or when no
// suffix was stripped, so callers only retry a genuinely different key.
func BaseAPN(apn string) string {
	i := len(apn)
	for i > 0 && unicode.IsLetter(rune(apn[i-1])) {
		i--
	}
	if i == len(apn) || i == 0 {
		return ""
	}
	return apn[:i]
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
