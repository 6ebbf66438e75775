package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func indentBlock(block string, spaces int) string {
	if spaces <= 0 {
		return block
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// truncateToWidth cuts styled text to width cells, ending in an ellipsis.
func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(text, 0, width-1) + "…"
}

func padToWidth(text string, width int) string {
	gap := width - xansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// truncatePlain handles user text without escape sequences, such as titles.
func truncatePlain(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// overlayBlock replaces base lines starting at row with the lines of block.
func overlayBlock(base, block string, row int) string {
	if block == "" {
		return base
	}
	if row < 0 {
		row = 0
	}
	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")
	for len(baseLines) < row+len(blockLines) {
		baseLines = append(baseLines, "")
	}
	for i, line := range blockLines {
		baseLines[row+i] = line
	}
	return strings.Join(baseLines, "\n")
}
