// Package cli holds the small terminal surface of the interactive demo:
// boxed banners and promptui-backed prompts.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"
	ellipsis       = "…"
)

const (
	DefaultWidth = 80

	bannerPadding   = 2
	truncateReserve = 1
)

var suppressBanner = sync.OnceValue(func() bool {
	v, err := strconv.ParseBool(os.Getenv("STATELINE_NO_BANNER"))

	return err == nil && v
})

// Banner draws s centered inside a box of the given width. Multi-line input
// produces one boxed line per input line. Setting STATELINE_NO_BANNER
// collapses the box to the bare text.
func Banner(s string, width int) string {
	if suppressBanner() {
		return s + "\n"
	}

	if width <= bannerPadding {
		width = DefaultWidth
	}

	inner := width - bannerPadding
	parts := []string{boxTopLeft + strings.Repeat(boxTop, inner) + boxTopRight}

	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		parts = append(parts, boxSide+padCenter(line, inner)+boxSide)
	}

	parts = append(parts, boxBottomLeft+strings.Repeat(boxBottom, inner)+boxBottomRight)

	return strings.Join(parts, "\n")
}

func padCenter(text string, width int) string {
	length := countGraphic(text)

	if length > width {
		text, length = truncateGraphic(text, width-truncateReserve)
		text += ellipsis
	}

	diff := width - length
	left := diff / 2 //nolint:mnd

	return fmt.Sprintf("%s%s%s",
		strings.Repeat(" ", left), text, strings.Repeat(" ", diff-left))
}

func countGraphic(s string) int {
	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			count++
		}
	}

	return count
}

func truncateGraphic(s string, n int) (string, int) {
	out := ""
	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			count++
		}

		if count >= n {
			break
		}

		out += string(r)
	}

	return out, count
}
