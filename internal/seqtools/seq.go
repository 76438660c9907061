package seqtools

import "strings"

// complements pairs each IUPAC symbol with its complement, both cases where
// the convention defines them. Symbols outside the table (gaps, etc) pass
// through ReverseComplement unchanged.
var complements = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G',
	'a': 't', 't': 'a', 'g': 'c', 'c': 'g',
	'N': 'N', 'n': 'n', 'R': 'Y', 'Y': 'R',
	'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
}

// ReverseComplement returns the reverse complement of a DNA sequence,
// preserving case and passing unrecognized symbols through as-is.
func ReverseComplement(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		b := seq[len(seq)-1-i]
		if c, ok := complements[b]; ok {
			b = c
		}
		rc[i] = b
	}
	return string(rc)
}

// GC returns the percentage of G and C bases in the sequence,
// or 0 for an empty sequence.
func GC(seq string) float64 {
	if seq == "" {
		return 0.0
	}

	seq = strings.ToUpper(seq)
	gc := strings.Count(seq, "G") + strings.Count(seq, "C")

	return float64(gc) / float64(len(seq)) * 100
}

// Composition holds per-base counts and percentages for a sequence.
// U residues are counted as T.
type Composition struct {
	Length int `json:"length"`

	A int `json:"a_count"`
	T int `json:"t_count"`
	G int `json:"g_count"`
	C int `json:"c_count"`
	N int `json:"n_count"`

	APercent float64 `json:"a_percent"`
	TPercent float64 `json:"t_percent"`
	GPercent float64 `json:"g_percent"`
	CPercent float64 `json:"c_percent"`

	GCPercent float64 `json:"gc_percent"`
	ATPercent float64 `json:"at_percent"`
}

// Compose counts base frequencies in the sequence. An empty sequence
// returns the zero value.
func Compose(seq string) Composition {
	seq = strings.ToUpper(seq)
	if seq == "" {
		return Composition{}
	}

	length := len(seq)
	pct := func(n int) float64 { return float64(n) / float64(length) * 100 }

	comp := Composition{
		Length: length,
		A:      strings.Count(seq, "A"),
		T:      strings.Count(seq, "T") + strings.Count(seq, "U"),
		G:      strings.Count(seq, "G"),
		C:      strings.Count(seq, "C"),
		N:      strings.Count(seq, "N"),
	}
	comp.APercent = pct(comp.A)
	comp.TPercent = pct(comp.T)
	comp.GPercent = pct(comp.G)
	comp.CPercent = pct(comp.C)
	comp.GCPercent = GC(seq)
	comp.ATPercent = 100 - comp.GCPercent

	return comp
}

// MeltingTemp estimates a primer's melting temperature in Celsius. Sequences
// shorter than 14 bases use the Wallace rule, 2*(A+T) + 4*(G+C); longer ones
// use a GC-content approximation, 64.9 + 41*(GC% - 16.4)/length. Neither is a
// nearest-neighbor thermodynamic calculation.
func MeltingTemp(seq string) float64 {
	seq = strings.ToUpper(seq)

	if len(seq) < 14 {
		at := strings.Count(seq, "A") + strings.Count(seq, "T")
		gc := strings.Count(seq, "G") + strings.Count(seq, "C")
		return float64(2*at + 4*gc)
	}

	return 64.9 + 41*(GC(seq)-16.4)/float64(len(seq))
}
