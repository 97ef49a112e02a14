package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/model"
)

func writeXLSX(t *testing.T, name string, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, fetcher.WriteXLSX(path, "Sheet1", header, rows))
	return path
}

func TestLoadProperties(t *testing.T) {
	path := writeXLSX(t, "main.xlsx",
		[]string{ColAddress, ColCity, ColFIPS, ColAPN, ColLastSaleDate, ColLastSaleAmount},
		[][]string{
			{"123 Elm Street", "Roanoke", "51770.0", "123-45-67", "2015-06-01", "$120,000"},
			{"", "Roanoke", "51770", "999", "", ""},
			{"9 Oak Ave", "Salem", "51770", "nan", "No Data", ""},
		})

	props, skipped, err := LoadProperties(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, props, 2)

	p := props[0]
	assert.Equal(t, "51770", p.FIPS)
	assert.Equal(t, "1234567", p.APN)
	assert.NotEmpty(t, p.NormalizedKey)
	assert.Equal(t, 2015, p.ParsedSaleDate.Year())
	require.NotNil(t, p.ParsedSaleAmount)
	assert.Equal(t, 120000.0, *p.ParsedSaleAmount)

	// flags start false for every known source type
	assert.Len(t, p.Flags, len(FlagSourceTypes))
	assert.False(t, p.Flags["Liens"])

	// nan APN reads empty, missing sale date parses to the sentinel
	assert.Empty(t, props[1].APN)
	assert.Equal(t, 1850, props[1].ParsedSaleDate.Year())
}

func TestLoadPropertiesOwnerNameFallback(t *testing.T) {
	path := writeXLSX(t, "main.xlsx",
		[]string{ColAddress, ColOwnerLastName, ColOwnerFirstName},
		[][]string{{"123 Elm St", "SMITH", "JOHN"}})

	props, _, err := LoadProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "SMITH JOHN", props[0].OwnerName)
}

func TestLoadPropertiesMissingAddressColumn(t *testing.T) {
	path := writeXLSX(t, "bad.xlsx", []string{"Whatever"}, [][]string{{"x"}})
	_, _, err := LoadProperties(path)
	assert.Error(t, err)
}

func TestLoadSecondaryNiche(t *testing.T) {
	path := writeXLSX(t, "liens.xlsx",
		[]string{ColAddress, ColCity, ColFIPS, ColLienType, ColLienAmount},
		[][]string{{"123 Elm St", "Roanoke", "51770", "Mechanics", "$4,500"}})

	recs, skipped, err := LoadSecondary(path, "Liens", model.DatasetNiche)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, recs, 1)
	assert.Equal(t, "Liens", recs[0].SourceType)
	assert.Equal(t, "Mechanics", recs[0].LienType)
}

func TestLoadSecondarySkipTraceColumns(t *testing.T) {
	path := writeXLSX(t, "skip.xlsx",
		[]string{ColSTAddress, ColSTCity, ColSTFIPS, ColGoldenAddress, ColDeceased, ColBankruptcy},
		[][]string{{"123 Elm St", "Roanoke", "51770", "PO Box 99", "Yes", "2023-04-15"}})

	recs, _, err := LoadSecondary(path, "SkipTrace", model.DatasetSkipTrace)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "123 Elm St", r.Address)
	assert.Equal(t, "PO Box 99", r.GoldenAddress)
	assert.True(t, r.OwnerDeceased)
	require.NotNil(t, r.BankruptcyDate)
	assert.Equal(t, 2023, r.BankruptcyDate.Year())
	assert.Nil(t, r.ForeclosureDate)
}

func TestLoadSecondarySkipTraceCountyFallback(t *testing.T) {
	// provider passed through county identity columns instead of its own
	path := writeXLSX(t, "skip.xlsx",
		[]string{ColAddress, ColCity, ColFIPS},
		[][]string{{"9 Oak Ave", "Salem", "51770"}})

	recs, _, err := LoadSecondary(path, "SkipTrace", model.DatasetSkipTrace)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "9 Oak Ave", recs[0].Address)
	assert.Equal(t, "Salem", recs[0].City)
}

func TestSaveAndLoadEnhancedRoundTrip(t *testing.T) {
	p := model.Property{
		Address:       "123 Elm St",
		City:          "Roanoke",
		FIPS:          "51770",
		APN:           "1234567",
		OwnerName:     "SMITH JOHN",
		Category:      model.CategoryRawLand,
		BasePriority:  model.Priority{ID: 7, Code: "ABS1", Name: "Absentee Owner"},
		Tags:          []string{"Liens", "Probate"},
		CompositeCode: "Liens-Probate-ABS1",
		CompositeName: "Liens + Probate Enhanced - Absentee Owner",
		Flags:         map[string]bool{},
		Golden: model.GoldenContact{
			Address: "PO Box 99", City: "Roanoke", Differs: true,
		},
	}
	p.Classification.IsBusiness = true
	for _, st := range FlagSourceTypes {
		p.Flags[st] = false
	}
	p.Flags["Liens"] = true
	p.Flags["Probate"] = true

	path := filepath.Join(t.TempDir(), "enhanced.xlsx")
	require.NoError(t, SaveProperties(path, []model.Property{p}))

	got, err := LoadEnhanced(path)
	require.NoError(t, err)
	require.Len(t, got, 1)

	g := got[0]
	assert.Equal(t, model.CategoryRawLand, g.Category)
	assert.True(t, g.Classification.IsBusiness)
	assert.Equal(t, "ABS1", g.BasePriority.Code)
	assert.Equal(t, []string{"Liens", "Probate"}, g.Tags)
	assert.Equal(t, "Liens-Probate-ABS1", g.CompositeCode)
	assert.True(t, g.Flags["Liens"])
	assert.False(t, g.Flags["Bankruptcy"])
	assert.True(t, g.Golden.Differs)
	assert.Equal(t, "PO Box 99", g.Golden.Address)
}

func TestLoadEnhancedRejectsPlainExport(t *testing.T) {
	path := writeXLSX(t, "main.xlsx", []string{ColAddress}, [][]string{{"123 Elm St"}})
	_, err := LoadEnhanced(path)
	assert.Error(t, err)
}
