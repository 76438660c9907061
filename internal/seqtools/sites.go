package seqtools

import (
	"fmt"
	"regexp"
	"strings"
)

// ambiguityReplacer expands the ambiguity codes allowed in recognition
// sites into regexp character classes.
var ambiguityReplacer = strings.NewReplacer(
	"N", "[ATGC]",
	"R", "[AG]",
	"Y", "[CT]",
)

// FindRestrictionSites searches the sequence for each enzyme's recognition
// site and returns the start positions of every hit. Sites may contain the
// ambiguity codes N, R and Y. Enzymes without hits are left out of the result.
func FindRestrictionSites(seq string, enzymes map[string]string) (map[string][]int, error) {
	seq = strings.ToUpper(seq)
	sites := make(map[string][]int)

	for enzyme, site := range enzymes {
		pattern := ambiguityReplacer.Replace(strings.ToUpper(site))
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad recognition site %q for %s: %w", site, enzyme, err)
		}

		var positions []int
		for _, match := range re.FindAllStringIndex(seq, -1) {
			positions = append(positions, match[0])
		}
		if len(positions) > 0 {
			sites[enzyme] = positions
		}
	}

	return sites, nil
}
