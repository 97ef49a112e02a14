package region

import "strings"

// SourceTypeOther is the fallback when a filename matches no known niche.
const SourceTypeOther = "Other"

// DetectSourceType infers a niche list's source type from its filename.
// CurrentTax vs TaxHistory: files published directly by the locality (or
// prefixed with a locality slug) are current delinquencies and outrank
// historical vendor data.
func DetectSourceType(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "lien"):
		return "Liens"
	case strings.Contains(name, "foreclosure"):
		return "PreForeclosure"
	case strings.Contains(name, "bankrupt"):
		return "Bankruptcy"
	case strings.Contains(name, "landlord") || strings.Contains(name, "tired"):
		return "Landlord"
	case strings.Contains(name, "delinq"):
		if strings.Contains(name, "current") || hasLocalityPrefix(name) {
			return "CurrentTax"
		}
		return "TaxHistory"
	case strings.Contains(name, "probate"):
		return "Probate"
	case strings.Contains(name, "interfamily") || strings.Contains(name, "family"):
		return "InterFamily"
	case strings.Contains(name, "cash") && strings.Contains(name, "buyer"):
		return "CashBuyer"
	case strings.Contains(name, "vacant"):
		return "Vacant"
	case strings.Contains(name, "code") && strings.Contains(name, "enforcement"):
		return "CodeEnforcement"
	case strings.Contains(name, "inherit"):
		return "Inherited"
	default:
		return SourceTypeOther
	}
}

// localityPrefixes are filename slugs used by localities that publish their
// own delinquency exports.
var localityPrefixes = []string{"roanoke_", "lynchburg_", "norfolk_"}

func hasLocalityPrefix(name string) bool {
	for _, p := range localityPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// IsMainFile reports whether a filename looks like the main registry export
// rather than a niche list.
func IsMainFile(filename string) bool {
	name := strings.ToLower(filename)
	return strings.Contains(name, "main_region") || strings.Contains(name, "property export")
}

// IsRecentSales reports whether a filename is a recent-sales supplement.
func IsRecentSales(filename string) bool {
	name := strings.ToLower(filename)
	return strings.Contains(name, "recent") && strings.Contains(name, "sales")
}
