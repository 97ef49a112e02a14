package linkage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgeline-data/propmail/internal/model"
)

func TestLinkMatchesAndComposes(t *testing.T) {
	registry := []model.Property{
		{Address: "123 MAIN ST", City: "ROANOKE", FIPS: "51770", BasePriority: model.Priority{Code: "OWN1"}},
	}
	engine := NewEngine(registry, "51770")

	stats, err := engine.Link(context.Background(), Dataset{
		Name:       "liens.xlsx",
		SourceType: "Liens",
		Kind:       model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "123 Main St,", City: "Roanoke", FIPS: "51770"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 0, stats.Inserted)

	got := engine.Records()[0]
	assert.Equal(t, []string{"Liens"}, got.Tags)
	assert.Equal(t, "Liens-OWN1", got.CompositeCode)
}

func TestLinkInsertsUnmatchedNiche(t *testing.T) {
	registry := []model.Property{
		{Address: "123 MAIN ST", City: "ROANOKE", FIPS: "51770", BasePriority: model.Priority{Code: "OWN1"}},
	}
	engine := NewEngine(registry, "51770")

	stats, err := engine.Link(context.Background(), Dataset{
		Name:       "liens.xlsx",
		SourceType: "Liens",
		Kind:       model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "999 New Ave", FIPS: "51770"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 1, stats.Inserted)
	require.Equal(t, 2, engine.Len())

	ins := engine.Records()[1]
	assert.True(t, ins.Synthesized)
	assert.Equal(t, "Liens", ins.BasePriority.Code)
	assert.Equal(t, NicheOnlyPriorityID, ins.BasePriority.ID)
	assert.Empty(t, ins.Tags)
	assert.Equal(t, "Liens", ins.CompositeCode)
}

func TestLinkIdempotentAcrossReruns(t *testing.T) {
	registry := []model.Property{
		{Address: "123 MAIN ST", City: "ROANOKE", FIPS: "51770", BasePriority: model.Priority{Code: "OWN1"}},
	}
	engine := NewEngine(registry, "51770")
	ds := Dataset{
		Name:       "liens.xlsx",
		SourceType: "Liens",
		Kind:       model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "123 Main St", City: "Roanoke", FIPS: "51770"},
		},
	}

	_, err := engine.Link(context.Background(), ds)
	require.NoError(t, err)
	_, err = engine.Link(context.Background(), ds)
	require.NoError(t, err)

	got := engine.Records()[0]
	assert.Equal(t, []string{"Liens"}, got.Tags)
	assert.Equal(t, "Liens-OWN1", got.CompositeCode)
}

func TestLinkJurisdictionIsolation(t *testing.T) {
	registry := []model.Property{
		{Address: "123 MAIN ST", City: "ROANOKE", FIPS: "51770", BasePriority: model.Priority{Code: "OWN1"}},
	}
	engine := NewEngine(registry, "51770")

	// Identical address and city, foreign jurisdiction: must never match,
	// and must not be inserted either.
	stats, err := engine.Link(context.Background(), Dataset{
		Name:       "liens.xlsx",
		SourceType: "Liens",
		Kind:       model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "123 Main St", City: "Roanoke", FIPS: "51161"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Filtered)
	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 0, stats.Inserted)
	assert.Empty(t, engine.Records()[0].Tags)
}

func TestLinkInsertedVisibleToLaterDatasets(t *testing.T) {
	engine := NewEngine([]model.Property{}, "51770")

	_, err := engine.Link(context.Background(), Dataset{
		Name: "liens.xlsx", SourceType: "Liens", Kind: model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "999 New Ave", FIPS: "51770"},
		},
	})
	require.NoError(t, err)

	stats, err := engine.Link(context.Background(), Dataset{
		Name: "probate.xlsx", SourceType: "Probate", Kind: model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Probate", Address: "999 New Ave", FIPS: "51770"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Matched)
	got := engine.Records()[0]
	assert.Equal(t, []string{"Probate"}, got.Tags)
	assert.Equal(t, "Probate-Liens", got.CompositeCode)
}

func TestLinkInsertedInvisibleWithinSameDataset(t *testing.T) {
	engine := NewEngine([]model.Property{}, "51770")

	stats, err := engine.Link(context.Background(), Dataset{
		Name: "liens.xlsx", SourceType: "Liens", Kind: model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "999 New Ave", FIPS: "51770"},
			{SourceType: "Liens", Address: "999 New Ave", FIPS: "51770"},
		},
	})
	require.NoError(t, err)

	// The second row must not match the first row's insertion mid-pass.
	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 2, stats.Inserted)
}

func TestLinkSkipTraceNeverInserts(t *testing.T) {
	engine := NewEngine([]model.Property{}, "51770")

	stats, err := engine.Link(context.Background(), Dataset{
		Name: "skip_results.xlsx", SourceType: "SkipTrace", Kind: model.DatasetSkipTrace,
		Records: []model.SecondaryRecord{
			{SourceType: "SkipTrace", Address: "999 New Ave", FIPS: "51770", OwnerDeceased: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 0, engine.Len())
}

func TestLinkCountsUnkeyedRecords(t *testing.T) {
	engine := NewEngine([]model.Property{}, "51770")

	stats, err := engine.Link(context.Background(), Dataset{
		Name: "liens.xlsx", SourceType: "Liens", Kind: model.DatasetNiche,
		Records: []model.SecondaryRecord{
			{SourceType: "Liens", Address: "   ", FIPS: "51770"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Inserted)
}

func TestAppendUnique(t *testing.T) {
	registry := []model.Property{
		{Address: "123 Main St", City: "Roanoke"},
	}
	recent := []model.Property{
		{Address: "123 MAIN ST,", City: "Roanoke"}, // same after normalization
		{Address: "777 Birch Rd", City: "Roanoke"},
		{Address: "   "},
	}

	merged, added := AppendUnique(registry, recent)
	assert.Equal(t, 1, added)
	require.Len(t, merged, 2)
	assert.Equal(t, "777 Birch Rd", merged[1].Address)
}
