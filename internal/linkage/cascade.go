package linkage

import "github.com/ridgeline-data/propmail/internal/model"

// Strategy identifies which cascade step produced a match.
type Strategy string

const (
	StrategyStructuredID Strategy = "structured_id"
	StrategyAddressCity  Strategy = "address_city"
	StrategyAddressOnly  Strategy = "address_only"
	StrategyNone         Strategy = "none"
)

// MatchResult is the outcome of resolving one secondary record. Candidates
// are registry positions; a record may match several canonical rows that
// share an address, and enrichment is applied to all of them.
type MatchResult struct {
	Strategy   Strategy
	Candidates []int
}

// Resolve runs the match cascade for one secondary record against the
// indexes. Strategies are tried in strict priority order and resolution
// stops at the first one that yields at least one candidate:
//
//  1. structured id: parcel identifiers are jurisdiction-unique by
//     construction and immune to address-text drift. A base-id variant with
//     the sub-parcel suffix stripped is tried before falling through.
//  2. address+city key.
//  3. address only, ignoring city. Weakest: can cross-match distinct
//     streets that normalize identically, so it is last resort only.
//
// A record with a blank normalized address and no APN resolves to None.
func Resolve(rec *model.SecondaryRecord, idx *Index) MatchResult {
	if apn := NormalizeAPN(rec.APN); apn != "" {
		if hits, ok := idx.byAPN[apn]; ok {
			return MatchResult{Strategy: StrategyStructuredID, Candidates: hits}
		}
		if base := BaseAPN(apn); base != "" {
			if hits, ok := idx.byAPN[base]; ok {
				return MatchResult{Strategy: StrategyStructuredID, Candidates: hits}
			}
		}
	}

	key := AddressCityKey(rec.Address, rec.City)
	if key == "" {
		return MatchResult{Strategy: StrategyNone}
	}
	if key != addressComponent(key) {
		if hits, ok := idx.byKey[key]; ok {
			return MatchResult{Strategy: StrategyAddressCity, Candidates: hits}
		}
	}

	if hits, ok := idx.byAddr[addressComponent(key)]; ok {
		return MatchResult{Strategy: StrategyAddressOnly, Candidates: hits}
	}
	return MatchResult{Strategy: StrategyNone}
}
