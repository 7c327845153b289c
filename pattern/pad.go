package pattern

import (
	"strconv"
	"strings"
)

// Pad renders value in decimal, left-padded with zeros to at least width
// digits. Negative values are returned unpadded with their sign.
func Pad(value, width int) string {
	s := strconv.Itoa(value)
	if value < 0 || len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// TwoDigits pads to width 2: 7 -> "07".
func TwoDigits(value int) string { return Pad(value, 2) }

// ThreeDigits pads to width 3: 7 -> "007", 98 -> "098".
func ThreeDigits(value int) string { return Pad(value, 3) }
