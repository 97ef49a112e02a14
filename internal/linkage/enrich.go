package linkage

import (
	"strings"

	"github.com/ridgeline-data/propmail/internal/model"
)

// skipTraceFlags orders the per-column distress flags a skip-trace row can
// carry. Detection order is fixed so tag ordering stays deterministic.
var skipTraceFlags = []struct {
	tag string
	set func(*model.SecondaryRecord) bool
}{
	{"STDeceased", func(r *model.SecondaryRecord) bool { return r.OwnerDeceased }},
	{"STBankruptcy", func(r *model.SecondaryRecord) bool { return r.BankruptcyDate != nil }},
	{"STForeclosure", func(r *model.SecondaryRecord) bool { return r.ForeclosureDate != nil }},
	{"STLien", func(r *model.SecondaryRecord) bool { return r.LienDate != nil }},
	{"STJudgment", func(r *model.SecondaryRecord) bool { return r.JudgmentDate != nil }},
	{"STQuitclaim", func(r *model.SecondaryRecord) bool { return r.QuitclaimDate != nil }},
}

// SkipTraceTags returns the distress tags carried by one skip-trace row.
func SkipTraceTags(rec *model.SecondaryRecord) []string {
	var tags []string
	for _, f := range skipTraceFlags {
		if f.set(rec) {
			tags = append(tags, f.tag)
		}
	}
	return tags
}

// Apply merges one secondary record's enrichment into a canonical record,
// idempotently, and recomputes the composite code. A tag already present is
// not appended again, but scalar fields (golden contact) are still
// refreshed: last write wins for non-tag fields.
func Apply(p *model.Property, rec *model.SecondaryRecord, kind model.DatasetKind) {
	tags := []string{rec.SourceType}
	if kind == model.DatasetSkipTrace {
		tags = SkipTraceTags(rec)
	}

	for _, tag := range tags {
		if !p.HasTag(tag) {
			p.Tags = append(p.Tags, tag)
		}
		p.SetFlag(tag)
	}

	if kind == model.DatasetSkipTrace {
		applyGolden(p, rec)
	}

	Compose(p)
}

// applyGolden copies present golden contact fields onto the record and
// flags a divergence from the original mailing address. The comparison is
// whitespace-insensitive but case-sensitive: providers return addresses in
// the county's casing, and a pure case change is still a different string
// worth flagging downstream.
func applyGolden(p *model.Property, rec *model.SecondaryRecord) {
	if g := strings.TrimSpace(rec.GoldenAddress); g != "" {
		p.Golden.Address = g
		orig := strings.TrimSpace(p.MailingAddress)
		p.Golden.Differs = orig != "" && collapseSpaces(g) != collapseSpaces(orig)
	}
	if g := strings.TrimSpace(rec.GoldenCity); g != "" {
		p.Golden.City = g
	}
	if g := strings.TrimSpace(rec.GoldenState); g != "" {
		p.Golden.State = g
	}
	if g := strings.TrimSpace(rec.GoldenZip); g != "" {
		p.Golden.Zip = g
	}
}
