// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	Yesterday     = "Ontem"
	PreviewLength = 150

	dateLayout          = "2006-01-02 15:04:05"
	formattedDateLayout = "02/01/2006 às 15:04"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// HumanDate renders date relative to now for message listings.
func HumanDate(date, now time.Time) string {
	if date.IsZero() {
		return ""
	}

	date = date.In(now.Location())
	switch {
	case sameDay(date, now):
		return date.Format("15:04")
	case sameDay(date, now.AddDate(0, 0, -1)):
		return Yesterday
	case date.Year() == now.Year():
		return date.Format("02/01")
	}

	return date.Format("02/01/2006")
}

// HumanSize picks the largest unit that keeps the value under 1024 and rounds
// to one decimal, dropping a trailing ".0".
func HumanSize(bytes int) string {
	size := float64(bytes)
	if size < 0 {
		size = 0
	}

	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	rounded := math.Round(size*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}

// PreviewText collapses whitespace and cuts at PreviewLength characters.
func PreviewText(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")

	runes := []rune(collapsed)
	if len(runes) > PreviewLength {
		return string(runes[:PreviewLength])
	}

	return collapsed
}
