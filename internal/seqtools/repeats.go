package seqtools

import (
	"sort"
	"strings"
)

// Repeat is a run of two or more consecutive copies of a repeat unit.
// End is exclusive; TotalLength spans every counted copy.
type Repeat struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Unit        string `json:"unit"`
	UnitLength  int    `json:"unit_length"`
	CopyNumber  int    `json:"copy_number"`
	TotalLength int    `json:"total_length"`
}

// maxRepeatUnit caps the candidate unit length during the scan.
const maxRepeatUnit = 50

// FindRepeats locates tandem repeats with a unit of at least minLength bases,
// looking ahead at most maxDistance bases for the next copy. Candidates are
// sorted by total span, longest first, then filtered greedily so that no two
// reported repeats overlap: the longer candidate always wins.
//
// The scan is quadratic over sequence length and unit range; callers bound
// runtime on very long inputs themselves.
func FindRepeats(seq string, minLength, maxDistance int) []Repeat {
	seq = strings.ToUpper(seq)

	var repeats []Repeat
	for i := 0; i < len(seq)-minLength; i++ {
		maxUnit := len(seq) - i
		if maxUnit > maxRepeatUnit {
			maxUnit = maxRepeatUnit
		}

		for length := minLength; length < maxUnit; length++ {
			unit := seq[i : i+length]

			searchStart := i + length
			searchEnd := i + maxDistance
			if searchEnd > len(seq) {
				searchEnd = len(seq)
			}
			if searchStart >= searchEnd {
				continue
			}

			next := strings.Index(seq[searchStart:searchEnd], unit)
			if next < 0 {
				continue
			}

			// count consecutive copies from the next occurrence on
			count := 1
			pos := searchStart + next
			for pos+length <= len(seq) && seq[pos:pos+length] == unit {
				count++
				pos += length
			}

			if count >= 2 {
				repeats = append(repeats, Repeat{
					Start:       i,
					End:         pos,
					Unit:        unit,
					UnitLength:  length,
					CopyNumber:  count + 1,
					TotalLength: (count + 1) * length,
				})
			}
		}
	}

	sort.SliceStable(repeats, func(i, j int) bool {
		return repeats[i].TotalLength > repeats[j].TotalLength
	})

	// greedy longest-wins overlap resolution
	var kept []Repeat
	for _, r := range repeats {
		overlaps := false
		for _, k := range kept {
			if r.Start < k.End && r.End > k.Start {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, r)
		}
	}

	return kept
}
