// Package score assigns base mailing priorities from region thresholds.
// The ladder mirrors the campaign rules: owner-occupant lists favor old
// sale dates and low amounts, absentee lists favor the same plus recent
// investor activity, trusts and churches get their own buckets.
package score

import (
	"strings"
	"time"

	"github.com/ridgeline-data/propmail/internal/model"
)

// Priority ids. Lower sorts earlier in the mail queue.
const (
	PriorityOwnerGrantorMatch = 1  // OIN1
	PriorityOwnerOldSale      = 2  // OWN1
	PriorityOwnerLowAmount    = 3  // OON1
	PriorityOwnerRecentBuyer  = 4  // BUY2
	PriorityTrust             = 5  // TRS2
	PriorityAbsenteeGrantor   = 6  // INH1
	PriorityAbsenteeOldSale   = 7  // ABS1
	PriorityAbsenteeLowAmount = 8  // TRS1
	PriorityInvestorBuyer     = 9  // BUY1
	PriorityChurch            = 10 // CHURCH
	PriorityDefault           = 11 // DEFAULT
	PriorityOwnerVeryOldSale  = 13 // OWN20
)

var priorities = map[int]model.Priority{
	PriorityOwnerGrantorMatch: {ID: 1, Code: "OIN1", Name: "OIN1 - Owner-Occupant List 1"},
	PriorityOwnerOldSale:      {ID: 2, Code: "OWN1", Name: "OWN1 - Owner-Occupant List 3"},
	PriorityOwnerLowAmount:    {ID: 3, Code: "OON1", Name: "OON1 - Owner-Occupant List 4"},
	PriorityOwnerRecentBuyer:  {ID: 4, Code: "BUY2", Name: "BUY2 - Owner-Occupant List 5"},
	PriorityTrust:             {ID: 5, Code: "TRS2", Name: "TRS2 - Trust"},
	PriorityAbsenteeGrantor:   {ID: 6, Code: "INH1", Name: "INH1 - Absentee List 1"},
	PriorityAbsenteeOldSale:   {ID: 7, Code: "ABS1", Name: "ABS1 - High Priority Absentee"},
	PriorityAbsenteeLowAmount: {ID: 8, Code: "TRS1", Name: "TRS1 - Absentee List 4"},
	PriorityInvestorBuyer:     {ID: 9, Code: "BUY1", Name: "BUY1 - Investor Buyers"},
	PriorityChurch:            {ID: 10, Code: "CHURCH", Name: "CHURCH - Church"},
	PriorityDefault:           {ID: 11, Code: "DEFAULT", Name: "DEFAULT - Default"},
	PriorityOwnerVeryOldSale:  {ID: 13, Code: "OWN20", Name: "OWN20 - Owner-Occupant List 20"},
}

// Thresholds carries the per-region scoring inputs.
type Thresholds struct {
	// DateCutoff1 bounds ABS1: absentee properties last sold on or before
	// this date. DateCutoff2 bounds BUY1/BUY2: properties sold on or after
	// it count as recent buys.
	DateCutoff1 time.Time
	DateCutoff2 time.Time
	// AmountCutoff1 is the low-sale-amount threshold (OON1, TRS1);
	// AmountCutoff2 is the high threshold kept for reporting.
	AmountCutoff1 float64
	AmountCutoff2 float64
}

// Scorer assigns base priorities. Construct once per region.
type Scorer struct {
	t   Thresholds
	now time.Time
}

// NewScorer builds a scorer for the given thresholds.
func NewScorer(t Thresholds) *Scorer {
	return &Scorer{t: t, now: time.Now()}
}

// Score assigns the base priority for one property from its classification
// and sale history. Pure given the scorer's construction time.
func (s *Scorer) Score(p *model.Property) model.Priority {
	id := PriorityDefault
	switch {
	case p.Classification.IsTrust:
		id = PriorityTrust
	case p.Classification.IsChurch:
		id = PriorityChurch
	case p.Classification.IsOwnerOccupied:
		id = s.scoreOwnerOccupied(p)
	default:
		id = s.scoreAbsentee(p)
	}
	return priorities[id]
}

func (s *Scorer) scoreOwnerOccupied(p *model.Property) int {
	if p.Classification.OwnerGrantorMatch {
		return PriorityOwnerGrantorMatch
	}
	saleDate := p.ParsedSaleDate
	if saleDate.IsZero() {
		saleDate = VeryOldDate
	}
	if !saleDate.After(s.now.AddDate(-20, 0, 0)) {
		return PriorityOwnerVeryOldSale
	}
	if !saleDate.After(s.now.AddDate(-13, 0, 0)) {
		return PriorityOwnerOldSale
	}
	if p.ParsedSaleAmount != nil && *p.ParsedSaleAmount <= s.t.AmountCutoff1 {
		return PriorityOwnerLowAmount
	}
	if !saleDate.Before(s.t.DateCutoff2) {
		if truthy(p.LastCashBuyer) {
			return PriorityInvestorBuyer
		}
		return PriorityOwnerRecentBuyer
	}
	return PriorityDefault
}

func (s *Scorer) scoreAbsentee(p *model.Property) int {
	if p.Classification.OwnerGrantorMatch {
		return PriorityAbsenteeGrantor
	}
	saleDate := p.ParsedSaleDate
	if saleDate.IsZero() {
		saleDate = VeryOldDate
	}
	// Blank and pre-1900 dates carry the very-old sentinel and land here.
	if !saleDate.After(s.t.DateCutoff1) {
		return PriorityAbsenteeOldSale
	}
	if p.ParsedSaleAmount != nil && *p.ParsedSaleAmount <= s.t.AmountCutoff1 {
		return PriorityAbsenteeLowAmount
	}
	if !saleDate.Before(s.t.DateCutoff2) {
		return PriorityInvestorBuyer
	}
	return PriorityDefault
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}

// BaseEnhancements returns the distress prefixes carried by the main file
// itself (vacancy, lien, bankruptcy, pre-foreclosure columns), in the order
// they prefix the base code.
func BaseEnhancements(p *model.Property) []string {
	var out []string
	if truthy(p.Vacant) {
		out = append(out, "Vacant")
	}
	if strings.TrimSpace(p.LienType) != "" {
		out = append(out, "Lien")
	}
	if strings.TrimSpace(p.BKDate) != "" {
		out = append(out, "Bankruptcy")
	}
	if strings.TrimSpace(p.PreFCDate) != "" {
		out = append(out, "PreForeclosure")
	}
	return out
}
