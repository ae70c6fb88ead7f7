package members

import (
	"github.com/antzucaro/matchr"

	"parliament-backend/lib/textutil"
)

// distinct name records this similar are almost always upstream data
// errors rather than genuine renames
const nearDuplicateThreshold = 0.95

// NearDuplicate is a pair of name records for the same member whose
// names are suspiciously similar without being equal, e.g. the
// near-duplicate records upstream holds for Mary Kelly Foy (4753).
// These are reported rather than merged; fixing them is a downstream
// decision.
type NearDuplicate struct {
	IDParliament int
	Left         string
	Right        string
	Similarity   float64
}

// FindNearDuplicateNames scans a member's collapsed name records for
// near-duplicate pairs.
func FindNearDuplicateNames(recs []NameRecord) []NearDuplicate {
	var out []NearDuplicate
	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs); j++ {
			left := textutil.NormalizeName(recs[i].Name)
			right := textutil.NormalizeName(recs[j].Name)
			if left == right {
				continue
			}
			similarity := matchr.JaroWinkler(left, right, false)
			if similarity >= nearDuplicateThreshold {
				out = append(out, NearDuplicate{
					IDParliament: recs[i].IDParliament,
					Left:         recs[i].Name,
					Right:        recs[j].Name,
					Similarity:   similarity,
				})
			}
		}
	}
	return out
}
