package registry

import (
	"strconv"
	"strings"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/model"
)

// OutputHeader is the enriched-registry column order: identity, sale
// history, classification, priority codes, source flags, golden contact.
func OutputHeader() []string {
	h := []string{
		ColAddress, ColCity, ColState, ColZip, ColFIPS, ColAPN,
		ColOwnerName, ColOwnerLastName, ColOwnerFirstName, ColGrantor,
		ColMailingAddress,
		ColLastSaleDate, ColLastSaleAmount, ColLastCashBuyer,
		ColVacant, ColLienType, ColBKDate, ColPreFCDate,
		ColCategory,
		ColIsTrust, ColIsChurch, ColIsBusiness, ColIsOwnerOcc, ColGrantorMatch,
		ColBaseCode, ColBaseName,
		ColTags, ColCompositeCode, ColCompositeName,
	}
	for _, st := range FlagSourceTypes {
		h = append(h, FlagColumn(st))
	}
	h = append(h, ColGoldenAddress, ColGoldenCity, ColGoldenState, ColGoldenZip, ColGoldenDiffers)
	return h
}

// OutputRow renders one canonical record in OutputHeader order.
func OutputRow(p *model.Property) []string {
	row := []string{
		p.Address, p.City, p.State, p.Zip, p.FIPS, p.APN,
		p.OwnerName, p.OwnerLastName, p.OwnerFirstName, p.Grantor,
		p.MailingAddress,
		p.LastSaleDate, p.LastSaleAmount, p.LastCashBuyer,
		p.Vacant, p.LienType, p.BKDate, p.PreFCDate,
		string(p.Category),
		boolCell(p.Classification.IsTrust),
		boolCell(p.Classification.IsChurch),
		boolCell(p.Classification.IsBusiness),
		boolCell(p.Classification.IsOwnerOccupied),
		boolCell(p.Classification.OwnerGrantorMatch),
		p.BasePriority.Code, p.BasePriority.Name,
		strings.Join(p.Tags, ", "), p.CompositeCode, p.CompositeName,
	}
	for _, st := range FlagSourceTypes {
		row = append(row, boolCell(p.Flags[st]))
	}
	row = append(row,
		p.Golden.Address, p.Golden.City, p.Golden.State, p.Golden.Zip,
		boolCell(p.Golden.Differs))
	return row
}

// SaveProperties writes the enriched registry workbook.
func SaveProperties(path string, props []model.Property) error {
	rows := make([][]string, 0, len(props))
	for i := range props {
		rows = append(rows, OutputRow(&props[i]))
	}
	return fetcher.WriteXLSX(path, "Enhanced", OutputHeader(), rows)
}

func boolCell(b bool) string {
	return strconv.FormatBool(b)
}
