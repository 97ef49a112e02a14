package registry

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFIPS(t *testing.T) {
	path := writeXLSX(t, "main.xlsx",
		[]string{ColAddress, ColFIPS},
		[][]string{
			{"123 Elm St", "51770"},
			{"9 Oak Ave", "51770.0"},
			{"4 Pine Rd", "51161"},
			{"8 Ash Ln", ""},
		})

	rep, err := CheckFIPS(path, "51770")
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 2, rep.Matching)
	assert.Equal(t, 1, rep.Foreign)
	assert.Equal(t, 1, rep.Blank)
	assert.False(t, rep.Clean())
}

func TestCheckFIPSNoColumn(t *testing.T) {
	path := writeXLSX(t, "main.xlsx", []string{ColAddress}, [][]string{{"123 Elm St"}})

	rep, err := CheckFIPS(path, "51770")
	require.NoError(t, err)
	assert.True(t, rep.Clean())
	assert.Equal(t, 1, rep.Blank)
}

func TestAutoCleanFIPS(t *testing.T) {
	path := writeXLSX(t, "main.xlsx",
		[]string{ColAddress, ColFIPS},
		[][]string{
			{"123 Elm St", "51770"},
			{"4 Pine Rd", "51161"},
			{"8 Ash Ln", ""},
		})

	removed, err := AutoCleanFIPS(path, "51770")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(path + ".backup")
	assert.NoError(t, err)

	props, _, err := LoadProperties(path)
	require.NoError(t, err)
	assert.Len(t, props, 2)

	rep, err := CheckFIPS(path, "51770")
	require.NoError(t, err)
	assert.True(t, rep.Clean())
}

func TestAutoCleanFIPSNoForeignRows(t *testing.T) {
	path := writeXLSX(t, "main.xlsx",
		[]string{ColAddress, ColFIPS},
		[][]string{{"123 Elm St", "51770"}})

	removed, err := AutoCleanFIPS(path, "51770")
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(err))
}
