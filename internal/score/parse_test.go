package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	assert.Equal(t, time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC), ParseDate("2015-06-30"))
	assert.Equal(t, time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC), ParseDate("06/30/2015"))

	// Blank, sentinel-year, future, and garbage dates all collapse to the
	// very-old sentinel instead of failing.
	assert.Equal(t, VeryOldDate, ParseDate(""))
	assert.Equal(t, VeryOldDate, ParseDate("1899-12-31"))
	assert.Equal(t, VeryOldDate, ParseDate("2150-01-01"))
	assert.Equal(t, VeryOldDate, ParseDate("not a date"))
}

func TestParseOptionalDate(t *testing.T) {
	got := ParseOptionalDate("2023-05-01")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, ParseOptionalDate(""))
	assert.Nil(t, ParseOptionalDate("No Data"))
	assert.Nil(t, ParseOptionalDate("garbage"))
}

func TestParseAmount(t *testing.T) {
	got := ParseAmount("$125,000")
	require.NotNil(t, got)
	assert.Equal(t, 125000.0, *got)

	assert.Nil(t, ParseAmount(""))
	assert.Nil(t, ParseAmount("null"))
	assert.Nil(t, ParseAmount("-500"))
	assert.Nil(t, ParseAmount("abc"))
}
