package linkage

import "github.com/ridgeline-data/propmail/internal/model"

// FilterByJurisdiction keeps only the secondary records whose jurisdiction
// code equals the registry's. Mismatches are silently dropped; an empty
// result is not an error, the pass simply enriches nothing.
func FilterByJurisdiction(records []model.SecondaryRecord, fips string) (kept []model.SecondaryRecord, dropped int) {
	want := NormalizeFIPS(fips)
	kept = make([]model.SecondaryRecord, 0, len(records))
	for _, r := range records {
		if NormalizeFIPS(r.FIPS) == want {
			kept = append(kept, r)
		} else {
			dropped++
		}
	}
	return kept, dropped
}
