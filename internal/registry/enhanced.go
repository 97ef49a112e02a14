package registry

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/model"
)

// LoadEnhanced reads a previously written enhanced workbook back into
// canonical records, restoring classification, priority, tags, and flags so
// a later skip-trace integration continues from where the monthly run
// stopped.
func LoadEnhanced(path string) ([]model.Property, error) {
	t, err := fetcher.ReadTable(path)
	if err != nil {
		return nil, err
	}
	if !t.HasCol(ColAddress) || !t.HasCol(ColBaseCode) {
		return nil, eris.Errorf("registry: %s is not an enhanced workbook", path)
	}

	props := make([]model.Property, 0, len(t.Rows))
	for _, row := range t.Rows {
		addr, _ := t.Col(row, ColAddress)
		if strings.TrimSpace(addr) == "" {
			continue
		}
		p := propertyFromRow(t, row)
		overlayEnhanced(t, row, &p)
		props = append(props, p)
	}
	return props, nil
}

func overlayEnhanced(t *fetcher.Table, row []string, p *model.Property) {
	col := func(name string) string {
		v, _ := t.Col(row, name)
		return v
	}
	boolCol := func(name string) bool {
		return strings.EqualFold(col(name), "true")
	}

	if c := col(ColCategory); c != "" {
		p.Category = model.PropertyCategory(c)
	}
	p.Classification = model.Classification{
		IsTrust:           boolCol(ColIsTrust),
		IsChurch:          boolCol(ColIsChurch),
		IsBusiness:        boolCol(ColIsBusiness),
		IsOwnerOccupied:   boolCol(ColIsOwnerOcc),
		OwnerGrantorMatch: boolCol(ColGrantorMatch),
	}
	p.BasePriority = model.Priority{
		Code: col(ColBaseCode),
		Name: col(ColBaseName),
	}
	if tags := col(ColTags); tags != "" {
		p.Tags = strings.Split(tags, ", ")
	}
	p.CompositeCode = col(ColCompositeCode)
	p.CompositeName = col(ColCompositeName)
	for _, st := range FlagSourceTypes {
		p.Flags[st] = boolCol(FlagColumn(st))
	}
	p.Golden = model.GoldenContact{
		Address: col(ColGoldenAddress),
		City:    col(ColGoldenCity),
		State:   col(ColGoldenState),
		Zip:     col(ColGoldenZip),
		Differs: boolCol(ColGoldenDiffers),
	}
}
