// Package format turns task data into display strings.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

const notAvailable = "N/A"

// RelativeDate renders t relative to now for the last week and as a short
// calendar date otherwise. The year is shown only when it differs from now.
func RelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return notAvailable
	}

	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return plural(minutes, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days < 7:
		return plural(days, "day") + " ago"
	}

	local := t.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006")
	}
	return local.Format("Jan 2")
}

// DateTime renders an absolute timestamp, e.g. "Mar 4, 2024, 3:07 PM".
func DateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return notAvailable
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("Jan 2, 2006, 3:04 PM")
}

type StatusCategory string

const (
	CategoryPending   StatusCategory = "pending"
	CategoryCompleted StatusCategory = "completed"
)

// Category maps a task status onto its badge category. Anything that is not
// Completed is shown as pending.
func Category(status string) StatusCategory {
	if status == model.StatusCompleted {
		return CategoryCompleted
	}
	return CategoryPending
}

// Truncate cuts text to maxLength runes and appends an ellipsis.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

func FileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

func FileKind(attachment model.Attachment) string {
	if attachment.IsPDF() {
		return "PDF"
	}
	return "IMG"
}

// SingleLine collapses newlines so multi-line content fits a list row.
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
