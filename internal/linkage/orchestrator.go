package linkage

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ridgeline-data/propmail/internal/model"
)

// Dataset is one materialized secondary dataset queued for linkage.
type Dataset struct {
	Name       string
	SourceType string
	Kind       model.DatasetKind
	Records    []model.SecondaryRecord
}

// Engine owns the canonical registry for the duration of a linkage run and
// drives secondary datasets through the filter, cascade, and apply phases.
// Datasets are processed sequentially; later datasets see records inserted
// by earlier ones.
type Engine struct {
	records []model.Property
	idx     *Index
	fips    string
	workers int
}

// NewEngine takes ownership of the registry records and builds the indexes.
func NewEngine(records []model.Property, fips string) *Engine {
	return &Engine{
		records: records,
		idx:     BuildIndex(records),
		fips:    fips,
		workers: runtime.NumCPU(),
	}
}

// SetWorkers overrides the resolve-phase parallelism. Values below 1 keep
// the NumCPU default.
func (e *Engine) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// Records releases the registry back to the caller.
func (e *Engine) Records() []model.Property {
	return e.records
}

// Len returns the current registry size.
func (e *Engine) Len() int {
	return len(e.records)
}

// Link runs one secondary dataset against the registry. Matching reads the
// indexes concurrently; results are applied serially in input order so tag
// accumulation stays deterministic and reproducible. Records the engine
// could not key (blank normalized address, no APN) are counted as skipped,
// never treated as errors.
func (e *Engine) Link(ctx context.Context, ds Dataset) (model.DatasetStats, error) {
	stats := model.DatasetStats{
		Dataset:    ds.Name,
		SourceType: ds.SourceType,
		Kind:       ds.Kind,
		Total:      len(ds.Records),
	}

	kept, dropped := FilterByJurisdiction(ds.Records, e.fips)
	stats.Filtered = dropped

	results, err := e.resolveAll(ctx, kept)
	if err != nil {
		return stats, err
	}

	// Apply phase: sequential, input order. Inserted records go into a
	// side arena and join the registry (and indexes) only after the pass,
	// so they are invisible to matching within this dataset but visible
	// to subsequent ones.
	var inserted []model.Property
	for i := range kept {
		rec := &kept[i]
		res := results[i]
		switch res.Strategy {
		case StrategyNone:
			if AddressCityKey(rec.Address, rec.City) == "" {
				stats.Skipped++
				continue
			}
			if ds.Kind == model.DatasetNiche {
				inserted = append(inserted, Synthesize(rec))
				stats.Inserted++
			}
		default:
			for _, ci := range res.Candidates {
				Apply(&e.records[ci], rec, ds.Kind)
			}
			stats.Matched++
			switch res.Strategy {
			case StrategyStructuredID:
				stats.Strategies.StructuredID++
			case StrategyAddressCity:
				stats.Strategies.AddressCity++
			case StrategyAddressOnly:
				stats.Strategies.AddressOnly++
			}
		}
	}

	for i := range inserted {
		e.records = append(e.records, inserted[i])
		e.idx.add(&e.records[len(e.records)-1], len(e.records)-1)
	}

	zap.L().Info("linkage pass complete",
		zap.String("dataset", ds.Name),
		zap.String("source_type", ds.SourceType),
		zap.Int("total", stats.Total),
		zap.Int("filtered", stats.Filtered),
		zap.Int("matched", stats.Matched),
		zap.Int("inserted", stats.Inserted),
		zap.Int("skipped", stats.Skipped),
		zap.Int("by_apn", stats.Strategies.StructuredID),
		zap.Int("by_address_city", stats.Strategies.AddressCity),
		zap.Int("by_address_only", stats.Strategies.AddressOnly),
	)

	return stats, nil
}

// resolveAll computes a MatchResult per secondary record. The cascade only
// reads the indexes, so resolution fans out across workers; results land in
// a slice indexed by input position to preserve ordering for the apply
// phase.
func (e *Engine) resolveAll(ctx context.Context, recs []model.SecondaryRecord) ([]MatchResult, error) {
	results := make([]MatchResult, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Resolve(&recs[i], e.idx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AppendUnique appends recent-sales rows whose normalized address is not
// already present in the registry. Rows with a blank normalized address are
// ignored. Runs before classification and scoring, so appended rows flow
// through the normal pipeline; returns the combined set and the count added.
func AppendUnique(records []model.Property, recent []model.Property) ([]model.Property, int) {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		if addr := NormalizeAddress(records[i].Address); addr != "" {
			seen[addr] = struct{}{}
		}
	}

	added := 0
	for i := range recent {
		addr := NormalizeAddress(recent[i].Address)
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		records = append(records, recent[i])
		added++
	}
	return records, added
}
