package fetcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	header := []string{"Address", "FIPS", "APN"}
	rows := [][]string{
		{"123 ELM ST", "51770", "1234567"},
		{"9 OAK AVE", "51770", "7654321A"},
	}
	require.NoError(t, WriteXLSX(path, "Enhanced", header, rows))

	tbl, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, header, tbl.Header)
	assert.Equal(t, rows, tbl.Rows)

	// leading-zero FIPS and lettered APNs must survive as strings
	v, ok := tbl.Col(tbl.Rows[1], "apn")
	assert.True(t, ok)
	assert.Equal(t, "7654321A", v)
}

func TestWriteWorkbookMultiSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	sheets := []Sheet{
		{Name: "Summary", Header: []string{"Field", "Value"}, Rows: [][]string{{"Region", "roanoke"}}},
		{Name: "Priority_Distribution", Header: []string{"Code", "Count"}, Rows: [][]string{{"OWN1", "12"}}},
	}
	require.NoError(t, WriteWorkbook(path, sheets))

	tbl, err := ReadXLSX(path, XLSXOptions{SheetName: "Priority_Distribution"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"OWN1", "12"}}, tbl.Rows)

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "Nope"})
	assert.Error(t, err)
}

func TestReadCSVWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	data := "\xEF\xBB\xBFAddress,City\n123 ELM ST,ROANOKE\n\n9 OAK AVE,SALEM\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tbl, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Address", "City"}, tbl.Header)
	assert.Len(t, tbl.Rows, 2)
}

func TestReadCSVWindows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ansi.csv")
	// 0xE9 is e-acute in Windows-1252, invalid as bare UTF-8
	data := []byte("Owner Name\nJOS\xE9 RAMIREZ\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tbl, err := ReadCSV(path, CSVOptions{Windows1252: true})
	require.NoError(t, err)
	assert.Equal(t, "JOSé RAMIREZ", tbl.Rows[0][0])
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B,C\n1,2\n"), 0o644))

	tbl, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", ""}, tbl.Rows[0])
}

func TestColMissingColumn(t *testing.T) {
	tbl := &Table{Header: []string{"Address"}, Rows: [][]string{{" 123 ELM ST "}}}

	v, ok := tbl.Col(tbl.Rows[0], "Address")
	assert.True(t, ok)
	assert.Equal(t, "123 ELM ST", v)

	_, ok = tbl.Col(tbl.Rows[0], "FIPS")
	assert.False(t, ok)
	assert.False(t, tbl.HasCol("FIPS"))
}

func TestIsSpreadsheetAndReadTable(t *testing.T) {
	assert.True(t, IsSpreadsheet("export.XLSX"))
	assert.True(t, IsSpreadsheet("list.csv"))
	assert.False(t, IsSpreadsheet("parcels.shp"))

	_, err := ReadTable("notes.txt")
	assert.Error(t, err)
}
