// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relation

import (
	"regexp"

	"github.com/pdiddy/psalm-parallels/pkg/types"
)

// bareNumeralRe matches a psalm-column citation that carries only the
// chapter number, the table's way of writing a Psalm without repeating
// the book name.
var bareNumeralRe = regexp.MustCompile(`^\d+$`)

// Extract turns the two parallel sequences of scraped citation cells into
// row-indexed group pairs. Row i of the psalm side and row i of the related
// side describe two co-occurring groups. When the sequences differ in
// length, the shorter one determines how many rows are kept; a ragged
// scrape is trimmed, not rejected. Per prd002-relations R1.7-R1.9.
//
// The psalm side always lists Psalms without repeating the book name, so a
// bare numeral becomes "Psa <numeral>". Related-side citations are stored
// as the source wrote them.
func Extract(psalmCells, relatedCells [][]string) (types.GroupPair, types.GroupPair) {
	rows := len(psalmCells)
	if len(relatedCells) < rows {
		rows = len(relatedCells)
	}

	psalms := make(types.GroupPair, rows)
	related := make(types.GroupPair, rows)

	for i := 0; i < rows; i++ {
		group := make([]string, 0, len(psalmCells[i]))
		for _, cite := range psalmCells[i] {
			if bareNumeralRe.MatchString(cite) {
				cite = "Psa " + cite
			}
			group = append(group, cite)
		}
		psalms[i] = group

		related[i] = append([]string(nil), relatedCells[i]...)
	}

	return psalms, related
}
