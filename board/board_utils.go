package board

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// StandardLayout is the reference 15-square line: the third row of
	// the classic crossword board.
	StandardLayout = `  -   ' '   -  `
	// CenterLayout is the middle row, with the center star.
	CenterLayout = `=  '   *   '  =`
	// ShortLayout is a small line used for quick games.
	ShortLayout = ` '-" =`
)

var namedLayouts = map[string]string{
	"standard": StandardLayout,
	"center":   CenterLayout,
	"short":    ShortLayout,
}

// LayoutByName returns a named layout. Anything that isn't a known name is
// taken to be a literal layout string.
func LayoutByName(name string) string {
	if l, ok := namedLayouts[strings.ToLower(name)]; ok {
		return l
	}
	return name
}

// LayoutNames lists the named layouts in alphabetical order.
func LayoutNames() []string {
	names := make([]string, 0, len(namedLayouts))
	for n := range namedLayouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (b *Board) ToDisplayText() string {
	var str strings.Builder
	n := b.Dim()
	row := "   "
	for i := 0; i < n; i++ {
		row += fmt.Sprintf("%-2d", i%100)
	}
	str.WriteString(row + "\n")
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	row = "  |"
	for i := 0; i < n; i++ {
		row += b.squares[i].DisplayString() + " "
	}
	str.WriteString(row + "|\n")
	row = "   "
	for i := 0; i < n; i++ {
		if b.squares[i].locked {
			row += "^ "
		} else {
			row += "  "
		}
	}
	str.WriteString(strings.TrimRight(row, " ") + "\n")
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + str.String()
}
