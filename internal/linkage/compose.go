package linkage

import (
	"strings"

	"github.com/ridgeline-data/propmail/internal/model"
)

// tagLabels maps source tags to the human labels used in composite names.
// Unlisted tags read as themselves.
var tagLabels = map[string]string{
	"PreForeclosure": "Pre-Foreclosure",
	"CurrentTax":     "Current Tax Delinquency",
	"TaxHistory":     "Tax Delinquency History",
	"CodeEnforcement": "Code Enforcement",
	"STDeceased":     "Deceased Owner",
}

// TagLabel returns the display label for a source tag.
func TagLabel(tag string) string {
	if l, ok := tagLabels[tag]; ok {
		return l
	}
	return tag
}

// Compose recomputes the composite priority code and name for a canonical
// record from its accumulated tags and base priority. The composition is
// derived purely from current state, so it is safe to call repeatedly and
// from any component.
//
//	code: "Liens-STBankruptcy-ABS1"
//	name: "Liens + STBankruptcy Enhanced - ABS1 - High Priority Absentee"
func Compose(p *model.Property) {
	if len(p.Tags) == 0 {
		p.CompositeCode = p.BasePriority.Code
		p.CompositeName = p.BasePriority.Name
		return
	}
	p.CompositeCode = strings.Join(p.Tags, "-") + "-" + p.BasePriority.Code

	labels := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		labels[i] = TagLabel(t)
	}
	p.CompositeName = strings.Join(labels, " + ") + " Enhanced - " + p.BasePriority.Name
}

// ParseCompositeTags recovers the tag sequence from a composite code given
// the base code it was composed over. Used by reporting and round-trip
// verification; returns nil when the code is the bare base code.
func ParseCompositeTags(composite, baseCode string) []string {
	if composite == baseCode {
		return nil
	}
	trimmed := strings.TrimSuffix(composite, "-"+baseCode)
	if trimmed == composite || trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "-")
}
