// Package classify implements the owner-name keyword classifier. The
// keyword tables were lifted from the legacy campaign rules and are matched
// against lowercased owner names; precedence is trust > church > business.
package classify

import (
	"strings"

	"github.com/ridgeline-data/propmail/internal/model"
)

var trustKeywords = []string{
	"trus", "estate", "decl", "supplemental", "living", "amend",
	"life", "trs", "execut", "revoc", "irrev",
}

var churchKeywords = []string{
	"church", "evangel", "presbyterian", "bible", "episcopal", "dioce",
	"protestant", "trinity", "holy", "jerusalum", "baptist", "lutheran",
	"nazar", " god ", "convenant", "ministry", " christ ",
}

var churchEndings = []string{" christ", " god"}

var businessKeywords = []string{
	"llc", "housing", "develop", "author", "planning",
	"district", "commiss", "partner", "group", "condo", "city",
	"real", "holding", "company", " inc ", " co ", " tc ",
	" bank ", "proprietor", "propert", "foundation", "commonwealth",
	"clinic", " office", "limit", " ltd", " health", " llp",
	" assoc", " corp", "enterprises", "attorney", "credit union",
	"incorporated", "medical", "center",
}

var businessEndings = []string{" lc", " inc", " co", " tc", " bank", " ltd", " llp"}

// Classify runs the keyword classifier over an owner name, with the grantor
// name feeding the inheritance-signal match. Church is only checked when
// the name is not a trust, business only when it is not a church, matching
// the legacy precedence.
func Classify(ownerName, grantorName string) model.Classification {
	owner := strings.ToLower(strings.TrimSpace(ownerName))

	var c model.Classification
	c.IsTrust = containsAny(owner, trustKeywords)
	if !c.IsTrust {
		c.IsChurch = isChurch(owner)
	}
	if !c.IsChurch {
		c.IsBusiness = isBusiness(owner, c.IsTrust)
	}
	c.OwnerGrantorMatch = grantorMatch(owner, grantorName)
	return c
}

// OwnerOccupied reports whether the mailing address equals the property
// address. PO boxes never count as occupancy.
func OwnerOccupied(propertyAddr, mailingAddr string) bool {
	prop := strings.ToLower(strings.TrimSpace(propertyAddr))
	mail := strings.ToLower(strings.TrimSpace(mailingAddr))
	if prop == "" || mail == "" {
		return false
	}
	if strings.HasPrefix(mail, "po ") || strings.HasPrefix(mail, "p o ") {
		return false
	}
	return prop == mail
}

// RawLandByAddress flags parcels whose address carries no street number:
// the first token of a developed-property address starts with digits.
func RawLandByAddress(address string) bool {
	fields := strings.Fields(strings.TrimSpace(address))
	if len(fields) == 0 {
		return false
	}
	return !strings.ContainsAny(fields[0], "0123456789")
}

func isChurch(owner string) bool {
	if containsAny(owner, churchKeywords) {
		return true
	}
	for _, e := range churchEndings {
		if strings.HasSuffix(owner, e) {
			return true
		}
	}
	return false
}

func isBusiness(owner string, isTrust bool) bool {
	if containsAny(owner, businessKeywords) {
		return true
	}
	for _, e := range businessEndings {
		if strings.HasSuffix(owner, e) {
			return true
		}
	}
	// Named trusts ("the smith family trust") are administered entities.
	if isTrust && strings.Contains(owner, "the ") {
		return true
	}
	return false
}

// grantorMatch flags a likely inheritance or intra-family transfer: the
// first words of owner and grantor agree while the full names differ.
func grantorMatch(owner, grantor string) bool {
	g := strings.ToLower(strings.TrimSpace(grantor))
	if owner == "" || g == "" {
		return false
	}
	ow := strings.Fields(owner)
	gw := strings.Fields(g)
	if len(ow) == 0 || len(gw) == 0 {
		return false
	}
	return ow[0] == gw[0] && owner != g
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
