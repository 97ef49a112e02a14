package linkage

import (
	"strings"

	"github.com/ridgeline-data/propmail/internal/model"
	"github.com/ridgeline-data/propmail/internal/score"
)

// NicheOnlyPriorityID marks records that exist only on a niche list, never
// in the registry export. Sorts after every scored priority.
const NicheOnlyPriorityID = 99

// Synthesize builds a new canonical record from an unmatched niche row.
// Classification flags default to false, the base priority carries the
// source type as its code, and accumulated tags stay empty.
func Synthesize(rec *model.SecondaryRecord) model.Property {
	owner := strings.TrimSpace(rec.OwnerLastName + " " + rec.OwnerFirstName)
	p := model.Property{
		Address:        rec.Address,
		NormalizedKey:  AddressCityKey(rec.Address, rec.City),
		City:           rec.City,
		State:          rec.State,
		Zip:            rec.Zip,
		FIPS:           NormalizeFIPS(rec.FIPS),
		APN:            rec.APN,
		OwnerName:      owner,
		OwnerLastName:  rec.OwnerLastName,
		OwnerFirstName: rec.OwnerFirstName,
		MailingAddress: rec.MailingAddress,
		LastSaleDate:   rec.LastSaleDate,
		LastSaleAmount: rec.LastSaleAmount,
		ParsedSaleDate: score.VeryOldDate,
		Category:       model.CategoryDeveloped,
		BasePriority: model.Priority{
			ID:   NicheOnlyPriorityID,
			Code: rec.SourceType,
			Name: rec.SourceType + " List Only",
		},
		Synthesized: true,
	}
	p.SetFlag(rec.SourceType)
	Compose(&p)
	return p
}
