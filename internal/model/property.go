// Package model defines the records shared across the propmail pipeline.
package model

import "time"

// PropertyCategory separates developed parcels from raw land so each can
// carry its own priority ladder.
type PropertyCategory string

const (
	CategoryDeveloped PropertyCategory = "DEVELOPED"
	CategoryRawLand   PropertyCategory = "RAW_LAND"
)

// Classification holds the owner-name classification results for a property.
// Produced by internal/classify; read-only to the linkage engine.
type Classification struct {
	IsTrust           bool `json:"is_trust"`
	IsChurch          bool `json:"is_church"`
	IsBusiness        bool `json:"is_business"`
	IsOwnerOccupied   bool `json:"is_owner_occupied"`
	OwnerGrantorMatch bool `json:"owner_grantor_match"`
}

// Priority is a base mailing priority assigned by internal/score.
type Priority struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// GoldenContact holds verified mailing contact fields from a skip-trace
// provider. Differs is true when the golden address textually differs from
// the record's original mailing address.
type GoldenContact struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Differs bool   `json:"differs"`
}

// Property is one canonical row of the master registry. The registry owns it
// for the duration of a run; the linkage engine mutates it in place.
type Property struct {
	// Identity.
	Address        string `json:"address"`
	NormalizedKey  string `json:"normalized_key"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Zip            string `json:"zip,omitempty"`
	FIPS           string `json:"fips"`
	APN            string `json:"apn,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	OwnerLastName  string `json:"owner_last_name,omitempty"`
	OwnerFirstName string `json:"owner_first_name,omitempty"`
	Grantor        string `json:"grantor,omitempty"`
	MailingAddress string `json:"mailing_address,omitempty"`

	// Sale history as exported plus parsed forms.
	LastSaleDate     string    `json:"last_sale_date,omitempty"`
	LastSaleAmount   string    `json:"last_sale_amount,omitempty"`
	LastCashBuyer    string    `json:"last_cash_buyer,omitempty"`
	ParsedSaleDate   time.Time `json:"parsed_sale_date,omitempty"`
	ParsedSaleAmount *float64  `json:"parsed_sale_amount,omitempty"`

	// Main-file distress columns that feed base-code prefixes.
	Vacant    string `json:"vacant,omitempty"`
	LienType  string `json:"lien_type,omitempty"`
	BKDate    string `json:"bk_date,omitempty"`
	PreFCDate string `json:"pre_fc_date,omitempty"`

	// Derived classification and scoring.
	Category       PropertyCategory `json:"category"`
	Classification Classification   `json:"classification"`
	BasePriority   Priority         `json:"base_priority"`

	// Linkage state. Tags is an ordered set: insertion order is application
	// order and no source type appears twice.
	Tags          []string        `json:"tags,omitempty"`
	Flags         map[string]bool `json:"flags,omitempty"`
	CompositeCode string          `json:"composite_code,omitempty"`
	CompositeName string          `json:"composite_name,omitempty"`

	Golden GoldenContact `json:"golden,omitempty"`

	// Synthesized is true for records inserted from an unmatched niche row.
	Synthesized bool `json:"synthesized,omitempty"`
}

// HasTag reports whether a source tag has already been applied.
func (p *Property) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SetFlag records the per-source boolean flag for a source type.
func (p *Property) SetFlag(sourceType string) {
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	p.Flags[sourceType] = true
}
