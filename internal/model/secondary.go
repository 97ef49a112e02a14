package model

import "time"

// SecondaryRecord is one row from a niche distress list or a skip-trace
// result file. Records are read-only: consumed once per linkage pass.
type SecondaryRecord struct {
	SourceType string `json:"source_type"`

	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	FIPS    string `json:"fips"`
	APN     string `json:"apn,omitempty"`

	OwnerLastName  string `json:"owner_last_name,omitempty"`
	OwnerFirstName string `json:"owner_first_name,omitempty"`
	MailingAddress string `json:"mailing_address,omitempty"`
	LastSaleDate   string `json:"last_sale_date,omitempty"`
	LastSaleAmount string `json:"last_sale_amount,omitempty"`

	// Niche payload.
	LienType   string `json:"lien_type,omitempty"`
	LienAmount string `json:"lien_amount,omitempty"`

	// Skip-trace payload. Event dates are nil when the provider reported
	// "No Data" for the column.
	GoldenAddress   string     `json:"golden_address,omitempty"`
	GoldenCity      string     `json:"golden_city,omitempty"`
	GoldenState     string     `json:"golden_state,omitempty"`
	GoldenZip       string     `json:"golden_zip,omitempty"`
	OwnerDeceased   bool       `json:"owner_deceased,omitempty"`
	BankruptcyDate  *time.Time `json:"bankruptcy_date,omitempty"`
	ForeclosureDate *time.Time `json:"foreclosure_date,omitempty"`
	LienDate        *time.Time `json:"lien_date,omitempty"`
	JudgmentDate    *time.Time `json:"judgment_date,omitempty"`
	QuitclaimDate   *time.Time `json:"quitclaim_date,omitempty"`
}

// DatasetKind distinguishes the two secondary-dataset flavors: niche lists
// may insert unmatched records, skip-trace files only enrich existing ones.
type DatasetKind string

const (
	DatasetNiche     DatasetKind = "niche"
	DatasetSkipTrace DatasetKind = "skiptrace"
)
