package linkage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgeline-data/propmail/internal/model"
)

func testRegistry() []model.Property {
	return []model.Property{
		{Address: "123 Main St", City: "Roanoke", FIPS: "51770", APN: "1234567"},
		{Address: "456 Oak Ave", City: "Roanoke", FIPS: "51770", APN: "7654321"},
		{Address: "456 Oak Ave", City: "Salem", FIPS: "51770"},
	}
}

func TestResolveStructuredIDPrecedence(t *testing.T) {
	idx := BuildIndex(testRegistry())

	// Matches under both the APN and the address key; the APN must win and
	// produce the same candidate the address would have.
	rec := &model.SecondaryRecord{Address: "123 Main St", City: "Roanoke", APN: "123-4567"}
	res := Resolve(rec, idx)
	assert.Equal(t, StrategyStructuredID, res.Strategy)
	assert.Equal(t, []int{0}, res.Candidates)

	addrOnly := Resolve(&model.SecondaryRecord{Address: "123 Main St", City: "Roanoke"}, idx)
	assert.Equal(t, res.Candidates, addrOnly.Candidates)
}

func TestResolveBaseAPNFallback(t *testing.T) {
	idx := BuildIndex(testRegistry())

	// Sub-parcel suffix strips back to the registry's base identifier.
	res := Resolve(&model.SecondaryRecord{APN: "1234567A"}, idx)
	assert.Equal(t, StrategyStructuredID, res.Strategy)
	assert.Equal(t, []int{0}, res.Candidates)
}

func TestResolveAddressCity(t *testing.T) {
	idx := BuildIndex(testRegistry())

	res := Resolve(&model.SecondaryRecord{Address: "456 Oak Ave,", City: "Salem"}, idx)
	assert.Equal(t, StrategyAddressCity, res.Strategy)
	assert.Equal(t, []int{2}, res.Candidates)
}

func TestResolveAddressOnlyMultiCandidate(t *testing.T) {
	idx := BuildIndex(testRegistry())

	// Unknown city falls through to the address-only view and hits every
	// record sharing the street address.
	res := Resolve(&model.SecondaryRecord{Address: "456 Oak Ave", City: "Vinton"}, idx)
	require.Equal(t, StrategyAddressOnly, res.Strategy)
	assert.ElementsMatch(t, []int{1, 2}, res.Candidates)
}

func TestResolveNone(t *testing.T) {
	idx := BuildIndex(testRegistry())

	assert.Equal(t, StrategyNone, Resolve(&model.SecondaryRecord{Address: "999 New Ave"}, idx).Strategy)
	assert.Equal(t, StrategyNone, Resolve(&model.SecondaryRecord{}, idx).Strategy)
	// Unknown APN with a blank address still resolves to None, not a panic.
	assert.Equal(t, StrategyNone, Resolve(&model.SecondaryRecord{APN: "0000000"}, idx).Strategy)
}

func TestFilterByJurisdiction(t *testing.T) {
	recs := []model.SecondaryRecord{
		{Address: "123 Main St", FIPS: "51770"},
		{Address: "123 Main St", FIPS: "51770.0"},
		{Address: "123 Main St", FIPS: "51161"},
		{Address: "123 Main St"},
	}
	kept, dropped := FilterByJurisdiction(recs, "51770")
	assert.Len(t, kept, 2)
	assert.Equal(t, 2, dropped)
}
