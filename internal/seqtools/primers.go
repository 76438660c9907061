package seqtools

import (
	"math"
	"sort"
	"strings"
)

// Primer is a PCR primer candidate. Start and End are coordinates on the
// forward strand; a reverse primer's Sequence is the reverse complement of
// that window.
type Primer struct {
	Sequence  string  `json:"sequence"`
	Start     int     `json:"start"`
	End       int     `json:"end"`
	Length    int     `json:"length"`
	Tm        float64 `json:"tm"`
	GCContent float64 `json:"gc_content"`
	Type      string  `json:"type"`
}

// primer candidate filters
const (
	primerScanWindow = 100 // bases scanned in from each end
	primerMinGC      = 40.0
	primerMaxGC      = 60.0
	primerKeep       = 20 // candidates returned
)

// DesignPrimers enumerates forward primer candidates over the first 100 bases
// and reverse candidates over the last 100, keeping those whose estimated Tm
// falls in [minTm, maxTm] and whose GC content falls in [40, 60]. The top 20
// candidates are returned, ordered by closeness of Tm to 60 degrees.
func DesignPrimers(seq string, minLen, maxLen int, minTm, maxTm float64) []Primer {
	seq = strings.ToUpper(seq)

	var primers []Primer
	keep := func(p Primer) {
		if p.Tm >= minTm && p.Tm <= maxTm && p.GCContent >= primerMinGC && p.GCContent <= primerMaxGC {
			primers = append(primers, p)
		}
	}

	// forward, scanning in from the 5' end
	maxStart := len(seq) - minLen
	if maxStart > primerScanWindow {
		maxStart = primerScanWindow
	}
	for start := 0; start < maxStart; start++ {
		for length := minLen; length <= maxLen && start+length <= len(seq); length++ {
			cand := seq[start : start+length]
			keep(Primer{
				Sequence:  cand,
				Start:     start,
				End:       start + length,
				Length:    length,
				Tm:        MeltingTemp(cand),
				GCContent: GC(cand),
				Type:      "forward",
			})
		}
	}

	// reverse, scanning in from the 3' end
	lowEnd := len(seq) - primerScanWindow
	if lowEnd < minLen-1 {
		lowEnd = minLen - 1
	}
	for end := len(seq) - minLen; end > lowEnd; end-- {
		for length := minLen; length <= maxLen && length <= end; length++ {
			cand := ReverseComplement(seq[end-length : end])
			keep(Primer{
				Sequence:  cand,
				Start:     end - length,
				End:       end,
				Length:    length,
				Tm:        MeltingTemp(cand),
				GCContent: GC(cand),
				Type:      "reverse",
			})
		}
	}

	sort.SliceStable(primers, func(i, j int) bool {
		return math.Abs(primers[i].Tm-60) < math.Abs(primers[j].Tm-60)
	})

	if len(primers) > primerKeep {
		primers = primers[:primerKeep]
	}

	return primers
}
