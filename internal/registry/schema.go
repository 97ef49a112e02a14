// Package registry is the spreadsheet I/O layer for the canonical property
// registry: loading county exports and secondary lists, writing the enriched
// output and the summary workbook.
package registry

// County export and niche list column names. Loaders tolerate missing
// optional columns; only the address column is required.
const (
	ColAddress        = "Address"
	ColCity           = "City"
	ColState          = "State"
	ColZip            = "Zip"
	ColFIPS           = "FIPS"
	ColAPN            = "APN"
	ColOwnerName      = "Owner Name"
	ColOwnerLastName  = "Owner 1 Last Name"
	ColOwnerFirstName = "Owner 1 First Name"
	ColGrantor        = "Grantor"
	ColMailingAddress = "Mailing Address"
	ColLastSaleDate   = "Last Sale Date"
	ColLastSaleAmount = "Last Sale Amount"
	ColLastCashBuyer  = "Last Cash Buyer"
	ColVacant         = "Vacant"
	ColLienType       = "Lien Type"
	ColLienAmount     = "Lien Amount"
	ColBKDate         = "BK Date"
	ColPreFCDate      = "Pre FC Date"
)

// Skip-trace provider column names. The provider prefixes property identity
// with "Property" and reports verified contact fields as "Golden".
const (
	ColSTAddress     = "Property Address"
	ColSTCity        = "Property City"
	ColSTState       = "Property State"
	ColSTZip         = "Property Zip"
	ColSTFIPS        = "Property FIPS"
	ColSTAPN         = "Property APN"
	ColGoldenAddress = "Golden Address"
	ColGoldenCity    = "Golden City"
	ColGoldenState   = "Golden State"
	ColGoldenZip     = "Golden Zip"
	ColDeceased      = "Owner Is Deceased"
	ColBankruptcy    = "Owner Bankruptcy"
	ColForeclosure   = "Owner Foreclosure"
	ColLien          = "Lien"
	ColJudgment      = "Judgment"
	ColQuitclaim     = "Quitclaim"
)

// Output-only column names.
const (
	ColCategory      = "Category"
	ColBaseCode      = "Base Priority Code"
	ColBaseName      = "Base Priority Name"
	ColCompositeCode = "Composite Code"
	ColCompositeName = "Composite Name"
	ColTags          = "Source Tags"
	ColGoldenDiffers = "Golden Differs"
	ColIsTrust       = "Is Trust"
	ColIsChurch      = "Is Church"
	ColIsBusiness    = "Is Business"
	ColIsOwnerOcc    = "Is Owner Occupied"
	ColGrantorMatch  = "Owner Grantor Match"
)

// FlagSourceTypes fixes the order of the per-source boolean columns in the
// enriched output. Every row carries all of them, false unless the source
// matched, so the output schema is stable run over run.
var FlagSourceTypes = []string{
	"Liens",
	"PreForeclosure",
	"Bankruptcy",
	"Landlord",
	"CurrentTax",
	"TaxHistory",
	"Probate",
	"InterFamily",
	"CashBuyer",
	"Vacant",
	"CodeEnforcement",
	"Inherited",
	"Other",
	"STDeceased",
	"STBankruptcy",
	"STForeclosure",
	"STLien",
	"STJudgment",
	"STQuitclaim",
}

// FlagColumn renders a source type as its output column name.
func FlagColumn(sourceType string) string {
	return "Has" + sourceType
}
