package score

import (
	"strconv"
	"strings"
	"time"
)

// VeryOldDate is the sentinel for blank, pre-1900, or unparseable sale
// dates. Old enough to pass every "older than threshold" check, so records
// with missing sale history land on the high-priority old-sale lists.
var VeryOldDate = time.Date(1850, time.January, 1, 0, 0, 0, 0, time.UTC)

// dateLayouts covers the formats county exports and vendor files ship.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseDate parses a sale date, mapping blanks, SQL sentinel dates
// (year <= 1900), future dates, and garbage to VeryOldDate. Total: never
// fails.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return VeryOldDate
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() <= 1900 || t.After(time.Now()) {
			return VeryOldDate
		}
		return t
	}
	return VeryOldDate
}

// ParseOptionalDate parses a vendor event date (bankruptcy, lien, judgment
// columns). Unlike sale dates there is no sentinel: blanks, "No Data", and
// unparseable values mean the event did not happen, so the result is nil.
func ParseOptionalDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "no data") {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseAmount parses a sale amount, tolerating dollar signs, thousands
// separators, and null spellings. Negative amounts are data errors and
// parse to nil.
func ParseAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
