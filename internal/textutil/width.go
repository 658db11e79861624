package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth reports the printable width of text, measured per grapheme
// cluster so combining marks do not add columns.
func DisplayWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += clusterCells(g.Str())
	}
	return width
}

// ClipToWidth returns the longest prefix of text that fits in width columns
// together with the number of columns it occupies. Clusters are never split,
// and a wide one that would straddle the limit is dropped.
func ClipToWidth(text string, width int) (string, int) {
	if width <= 0 {
		return "", 0
	}
	var builder strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := clusterCells(cluster)
		if used+w > width {
			break
		}
		builder.WriteString(cluster)
		used += w
	}
	return builder.String(), used
}

func clusterCells(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		return 1
	}
	return w
}
