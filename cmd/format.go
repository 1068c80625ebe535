package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jfmyers9/recap/internal/tags"
	"github.com/mattn/go-runewidth"
)

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, so wide runes count twice.
// Text longer than width is cut with a "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)
	if currentWidth > width {
		const ellipsis = "..."
		if width <= len(ellipsis) {
			return runewidth.Truncate(ellipsis, width, "")
		}
		text = runewidth.Truncate(text, width-len(ellipsis), "") + ellipsis
		currentWidth = runewidth.StringWidth(text)
	}
	if currentWidth < width {
		text += strings.Repeat(" ", width-currentWidth)
	}
	return text
}

// writeTagTable prints tags as aligned rank, name and count columns.
// Names wider than maxName are truncated.
func writeTagTable(w io.Writer, result []tags.Tag, maxName int) error {
	nameWidth := len("TAG")
	for _, t := range result {
		nameWidth = max(nameWidth, runewidth.StringWidth(t.Name))
	}
	if maxName > 0 {
		nameWidth = min(nameWidth, maxName)
	}

	rankWidth := len(fmt.Sprint(len(result)))
	header := fmt.Sprintf("%*s  %s  %s\n", rankWidth, "#", padToWidth("TAG", nameWidth), "COUNT")
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for i, t := range result {
		line := fmt.Sprintf("%*d  %s  %s\n", rankWidth, i+1, padToWidth(t.Name, nameWidth), t.Count)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
