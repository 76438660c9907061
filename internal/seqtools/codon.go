// Package seqtools has pure functions for analyzing nucleotide sequences:
// translation, reverse complementing, ORF scanning, restriction site and
// tandem repeat searches, composition statistics and primer design.
package seqtools

import "strings"

// geneticCodes maps NCBI translation table numbers to codon tables. Only the
// standard code (table 1) is defined; lookups for other tables fall back to it.
// The tables are never mutated after startup.
var geneticCodes = map[int]map[string]byte{
	1: {
		"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
		"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
		"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
		"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
		"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
		"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
		"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
		"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
		"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
		"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
		"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
		"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
		"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
		"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
		"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
		"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
	},
}

// Translate translates a DNA/RNA sequence to protein. The sequence is
// uppercased and U is mapped to T first. With useStart, translation begins at
// the first ATG (position 0 if there is none). Codons map through the genetic
// code table; indeterminate codons become 'X' and translation halts right
// after the first stop ('*'), which is kept in the output.
func Translate(seq string, geneticCode int, useStart bool) string {
	table, ok := geneticCodes[geneticCode]
	if !ok {
		table = geneticCodes[1]
	}

	seq = strings.ReplaceAll(strings.ToUpper(seq), "U", "T")

	start := 0
	if useStart {
		if i := strings.Index(seq, "ATG"); i >= 0 {
			start = i
		}
	}

	var protein strings.Builder
	for i := start; i+3 <= len(seq); i += 3 {
		aa, known := table[seq[i:i+3]]
		if !known {
			aa = 'X'
		}
		protein.WriteByte(aa)
		if aa == '*' {
			break
		}
	}

	return protein.String()
}

// isStop reports whether the codon is one of TAA, TAG or TGA.
func isStop(codon string) bool {
	return codon == "TAA" || codon == "TAG" || codon == "TGA"
}
