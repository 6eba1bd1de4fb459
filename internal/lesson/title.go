// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lesson

import (
	"regexp"
	"strings"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

// titleScanCells is how many leading cells are searched for the title.
const titleScanCells = 3

var titleHeading = regexp.MustCompile(`(?m)^#` + space + `+(.+)$`)

// Title returns the first level-1 heading found in the markdown cells among
// the first three cells of nb, or types.UnknownTitle.
func Title(nb *types.Notebook) string {
	if nb == nil {
		return types.UnknownTitle
	}
	cells := nb.Cells
	if len(cells) > titleScanCells {
		cells = cells[:titleScanCells]
	}
	for _, cell := range cells {
		if !cell.IsMarkdown() {
			continue
		}
		if m := titleHeading.FindStringSubmatch(cell.Text()); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return types.UnknownTitle
}
