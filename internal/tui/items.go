package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/lazytracker/internal/format"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

func statusBadge(status string) string {
	if format.Category(status) == format.CategoryCompleted {
		return "[x]"
	}
	return "[ ]"
}

func formatTaskSummary(task model.Task, now time.Time) string {
	return fmt.Sprintf("%s %s | %s | %s",
		statusBadge(task.Status),
		format.Truncate(format.SingleLine(task.Title), 60),
		task.AssignedUser.DisplayName,
		format.RelativeDate(task.CreatedAt.Time, now),
	)
}

func taskCardLines(task model.Task, now time.Time) []string {
	completed := "-"
	if task.IsCompleted() {
		completed = format.DateTime(task.CompletedTime(), time.Local)
	}

	return []string{
		task.Title,
		fmt.Sprintf("Status: %s", task.Status),
		fmt.Sprintf("Assigned to: %s", task.AssignedUser.DisplayName),
		fmt.Sprintf("Created: %s", format.RelativeDate(task.CreatedAt.Time, now)),
		fmt.Sprintf("Completed: %s", completed),
		fmt.Sprintf("Notes: %d", len(task.Notes)),
		"",
		task.Description,
	}
}

// noteRow is one selectable line of the notes modal: a note, or one of its
// attachments when attachment is set.
type noteRow struct {
	note       model.Note
	attachment *model.Attachment
}

func buildNoteRows(task *model.Task) []noteRow {
	if task == nil {
		return nil
	}
	rows := make([]noteRow, 0, len(task.Notes))
	for _, note := range task.Notes {
		rows = append(rows, noteRow{note: note})
		for i := range note.Attachments {
			attachment := note.Attachments[i]
			rows = append(rows, noteRow{note: note, attachment: &attachment})
		}
	}
	return rows
}

func formatNoteRow(row noteRow) string {
	if row.attachment != nil {
		return fmt.Sprintf("    %s %s (%s)",
			format.FileKind(*row.attachment),
			row.attachment.Filename,
			format.FileSize(row.attachment.FileSize),
		)
	}
	return fmt.Sprintf("%s  %s",
		format.DateTime(row.note.CreatedAt.Time, time.Local),
		strings.TrimSpace(format.SingleLine(row.note.Content)),
	)
}
