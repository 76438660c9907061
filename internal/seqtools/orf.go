package seqtools

import (
	"sort"
	"strings"
)

// ORF is an open reading frame found in one of the six reading frames of a
// sequence. Start and Stop are coordinates in the original, forward-strand
// sequence. Length includes the stop codon.
type ORF struct {
	Frame   int    `json:"frame"`
	Start   int    `json:"start"`
	Stop    int    `json:"stop"`
	Length  int    `json:"length"`
	DNA     string `json:"dna_sequence"`
	Protein string `json:"protein_sequence"`
}

// FindORFs scans all six reading frames for ATG-to-stop runs of at least
// minLength nucleotides (stop codon included). For each start codon only the
// nearest in-frame stop is considered. Results are sorted by length,
// longest first; ties keep discovery order.
func FindORFs(seq string, minLength int) []ORF {
	seq = strings.ReplaceAll(strings.ToUpper(seq), "U", "T")
	rc := ReverseComplement(seq)

	// frames +1..+3 then -1..-3
	frames := []string{seq, trimLeft(seq, 1), trimLeft(seq, 2), rc, trimLeft(rc, 1), trimLeft(rc, 2)}

	var orfs []ORF
	for frameIdx, fseq := range frames {
		frame := frameIdx + 1
		if frameIdx >= 3 {
			frame = -(frameIdx - 2)
		}

		for start := 0; ; {
			i := strings.Index(fseq[start:], "ATG")
			if i < 0 {
				break
			}
			start += i

			// nearest downstream in-frame stop
			for stop := start + 3; stop+3 <= len(fseq); stop += 3 {
				if !isStop(fseq[stop : stop+3]) {
					continue
				}

				if length := stop - start + 3; length >= minLength {
					dna := fseq[start : stop+3]

					var actualStart, actualStop int
					if frame > 0 {
						actualStart = start + (frame - 1)
						actualStop = stop + (frame - 1) + 3
					} else {
						actualStart = len(seq) - (stop - frame - 1) - 3
						actualStop = len(seq) - (start - frame - 1)
					}

					orfs = append(orfs, ORF{
						Frame:   frame,
						Start:   actualStart,
						Stop:    actualStop,
						Length:  length,
						DNA:     dna,
						Protein: Translate(dna, 1, true),
					})
				}
				break // only the first in-frame stop counts
			}

			start++
		}
	}

	sort.SliceStable(orfs, func(i, j int) bool {
		return orfs[i].Length > orfs[j].Length
	})

	return orfs
}

// trimLeft drops n leading bases, or everything when the sequence is shorter.
func trimLeft(seq string, n int) string {
	if n > len(seq) {
		return ""
	}
	return seq[n:]
}
