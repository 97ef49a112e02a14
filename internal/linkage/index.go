package linkage

import "github.com/ridgeline-data/propmail/internal/model"

// Index holds the read-only lookup structures for one canonical record set.
// Keys map to registry slice positions; both maps are one-to-many because
// the source registry is not deduplicated.
type Index struct {
	byAPN map[string][]int
	byKey map[string][]int
	// byAddr is the secondary "ignore city" view over the same key space:
	// the address component of every compound key.
	byAddr map[string][]int
}

// BuildIndex constructs the lookup structures over the canonical record set.
// Records with a blank normalized address are indexed by APN only.
func BuildIndex(records []model.Property) *Index {
	idx := &Index{
		byAPN:  make(map[string][]int),
		byKey:  make(map[string][]int),
		byAddr: make(map[string][]int),
	}
	for i := range records {
		idx.add(&records[i], i)
	}
	return idx
}

// add indexes one canonical record at position i. Also used by the
// orchestrator to make synthesized records visible to subsequent passes.
func (x *Index) add(p *model.Property, i int) {
	if apn := NormalizeAPN(p.APN); apn != "" {
		x.byAPN[apn] = append(x.byAPN[apn], i)
	}
	key := AddressCityKey(p.Address, p.City)
	if key == "" {
		return
	}
	x.byKey[key] = append(x.byKey[key], i)
	addr := addressComponent(key)
	x.byAddr[addr] = append(x.byAddr[addr], i)
}

// Size returns the number of distinct address keys.
func (x *Index) Size() int {
	return len(x.byKey)
}
