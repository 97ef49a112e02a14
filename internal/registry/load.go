package registry

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/linkage"
	"github.com/ridgeline-data/propmail/internal/model"
	"github.com/ridgeline-data/propmail/internal/score"
)

// LoadProperties reads a county registry export into canonical records.
// Every record gets its normalized key, parsed sale fields, and the full
// false-initialized flag set. Rows with a blank address are dropped and
// counted in the returned skip count.
func LoadProperties(path string) ([]model.Property, int, error) {
	t, err := fetcher.ReadTable(path)
	if err != nil {
		return nil, 0, err
	}
	if !t.HasCol(ColAddress) {
		return nil, 0, eris.Errorf("registry: %s is missing the %q column", path, ColAddress)
	}

	props := make([]model.Property, 0, len(t.Rows))
	skipped := 0
	for _, row := range t.Rows {
		addr, _ := t.Col(row, ColAddress)
		if strings.TrimSpace(addr) == "" {
			skipped++
			continue
		}
		props = append(props, propertyFromRow(t, row))
	}
	if skipped > 0 {
		zap.L().Warn("registry: skipped blank-address rows",
			zap.String("file", path),
			zap.Int("skipped", skipped))
	}
	return props, skipped, nil
}

func propertyFromRow(t *fetcher.Table, row []string) model.Property {
	col := func(name string) string {
		v, _ := t.Col(row, name)
		return v
	}

	p := model.Property{
		Address:        col(ColAddress),
		City:           col(ColCity),
		State:          col(ColState),
		Zip:            col(ColZip),
		FIPS:           linkage.NormalizeFIPS(col(ColFIPS)),
		APN:            linkage.NormalizeAPN(col(ColAPN)),
		OwnerName:      col(ColOwnerName),
		OwnerLastName:  col(ColOwnerLastName),
		OwnerFirstName: col(ColOwnerFirstName),
		Grantor:        col(ColGrantor),
		MailingAddress: col(ColMailingAddress),
		LastSaleDate:   col(ColLastSaleDate),
		LastSaleAmount: col(ColLastSaleAmount),
		LastCashBuyer:  col(ColLastCashBuyer),
		Vacant:         col(ColVacant),
		LienType:       col(ColLienType),
		BKDate:         col(ColBKDate),
		PreFCDate:      col(ColPreFCDate),
		Category:       model.CategoryDeveloped,
		Flags:          make(map[string]bool, len(FlagSourceTypes)),
	}
	if p.OwnerName == "" && (p.OwnerLastName != "" || p.OwnerFirstName != "") {
		p.OwnerName = strings.TrimSpace(p.OwnerLastName + " " + p.OwnerFirstName)
	}
	p.NormalizedKey = linkage.AddressCityKey(p.Address, p.City)
	p.ParsedSaleDate = score.ParseDate(p.LastSaleDate)
	p.ParsedSaleAmount = score.ParseAmount(p.LastSaleAmount)
	for _, st := range FlagSourceTypes {
		p.Flags[st] = false
	}
	return p
}

// LoadSecondary reads a niche list or skip-trace file into secondary
// records. Niche files use the county column names; skip-trace files use
// the provider's "Property *" identity and "Golden *" contact columns, with
// a fallback to the county names for vendors that pass them through.
func LoadSecondary(path, sourceType string, kind model.DatasetKind) ([]model.SecondaryRecord, int, error) {
	t, err := fetcher.ReadTable(path)
	if err != nil {
		return nil, 0, err
	}
	addrCol := ColAddress
	if kind == model.DatasetSkipTrace && t.HasCol(ColSTAddress) {
		addrCol = ColSTAddress
	}
	if !t.HasCol(addrCol) {
		return nil, 0, eris.Errorf("registry: %s is missing the %q column", path, addrCol)
	}

	recs := make([]model.SecondaryRecord, 0, len(t.Rows))
	skipped := 0
	for _, row := range t.Rows {
		addr, _ := t.Col(row, addrCol)
		if strings.TrimSpace(addr) == "" {
			skipped++
			continue
		}
		recs = append(recs, secondaryFromRow(t, row, sourceType, kind))
	}
	return recs, skipped, nil
}

func secondaryFromRow(t *fetcher.Table, row []string, sourceType string, kind model.DatasetKind) model.SecondaryRecord {
	// either reads the first column present, so skip-trace identity
	// degrades to the county names when the provider passes them through.
	either := func(primary, fallback string) string {
		if v, ok := t.Col(row, primary); ok && v != "" {
			return v
		}
		v, _ := t.Col(row, fallback)
		return v
	}
	col := func(name string) string {
		v, _ := t.Col(row, name)
		return v
	}

	rec := model.SecondaryRecord{
		SourceType:     sourceType,
		OwnerLastName:  col(ColOwnerLastName),
		OwnerFirstName: col(ColOwnerFirstName),
		MailingAddress: col(ColMailingAddress),
		LastSaleDate:   col(ColLastSaleDate),
		LastSaleAmount: col(ColLastSaleAmount),
		LienType:       col(ColLienType),
		LienAmount:     col(ColLienAmount),
	}
	if kind == model.DatasetSkipTrace {
		rec.Address = either(ColSTAddress, ColAddress)
		rec.City = either(ColSTCity, ColCity)
		rec.State = either(ColSTState, ColState)
		rec.Zip = either(ColSTZip, ColZip)
		rec.FIPS = linkage.NormalizeFIPS(either(ColSTFIPS, ColFIPS))
		rec.APN = linkage.NormalizeAPN(either(ColSTAPN, ColAPN))
		rec.GoldenAddress = col(ColGoldenAddress)
		rec.GoldenCity = col(ColGoldenCity)
		rec.GoldenState = col(ColGoldenState)
		rec.GoldenZip = col(ColGoldenZip)
		rec.OwnerDeceased = isDeceased(col(ColDeceased))
		rec.BankruptcyDate = score.ParseOptionalDate(col(ColBankruptcy))
		rec.ForeclosureDate = score.ParseOptionalDate(col(ColForeclosure))
		rec.LienDate = score.ParseOptionalDate(col(ColLien))
		rec.JudgmentDate = score.ParseOptionalDate(col(ColJudgment))
		rec.QuitclaimDate = score.ParseOptionalDate(col(ColQuitclaim))
	} else {
		rec.Address = col(ColAddress)
		rec.City = col(ColCity)
		rec.State = col(ColState)
		rec.Zip = col(ColZip)
		rec.FIPS = linkage.NormalizeFIPS(col(ColFIPS))
		rec.APN = linkage.NormalizeAPN(col(ColAPN))
	}
	return rec
}

func isDeceased(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "y", "1", "deceased":
		return true
	}
	return false
}
