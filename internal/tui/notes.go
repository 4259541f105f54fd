package tui

import (
	"context"
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/lazytracker/internal/format"
)

func (u *UI) bindNotesKeys(gui *gocui.Gui) error {
	bindings := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyArrowDown, u.nextNoteRow},
		{'j', u.nextNoteRow},
		{gocui.KeyArrowUp, u.prevNoteRow},
		{'k', u.prevNoteRow},
		{'a', u.addNote},
		{'e', u.editNote},
		{'d', u.deleteNoteRow},
		{'u', u.uploadToNote},
		{'o', u.downloadAttachment},
		{gocui.KeyEsc, u.closeNotes},
		{'q', u.closeNotes},
	}
	for _, binding := range bindings {
		if err := gui.SetKeybinding(viewNotes, binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) openNotes(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTaskRef()
	if selected == nil {
		return nil
	}
	task := *selected
	u.selectedNote = 0
	u.dispatch("view notes", func(ctx context.Context) error {
		return u.app.ViewNotes(ctx, task)
	})
	return nil
}

func (u *UI) closeNotes(gui *gocui.Gui, _ *gocui.View) error {
	u.app.CloseNotes()
	u.selectedNote = 0
	closeView(gui, viewNotes)
	u.refresh()
	return nil
}

func (u *UI) notesBusy() bool {
	return !u.snap.Notes.Open || u.prompt != nil || u.confirm != nil
}

func (u *UI) selectedNoteRow() *noteRow {
	rows := buildNoteRows(u.snap.Notes.Task)
	if u.selectedNote >= 0 && u.selectedNote < len(rows) {
		return &rows[u.selectedNote]
	}
	return nil
}

func (u *UI) nextNoteRow(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	if u.selectedNote < len(buildNoteRows(u.snap.Notes.Task))-1 {
		u.selectedNote++
	}
	return nil
}

func (u *UI) prevNoteRow(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	if u.selectedNote > 0 {
		u.selectedNote--
	}
	return nil
}

func (u *UI) addNote(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	u.openPrompt("Add Note", "", u.app.AddNote)
	return nil
}

func (u *UI) editNote(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	row := u.selectedNoteRow()
	if row == nil || row.attachment != nil {
		return nil
	}
	noteID := row.note.ID
	u.openPrompt("Edit Note", row.note.Content, func(ctx context.Context, value string) error {
		return u.app.UpdateNote(ctx, noteID, value)
	})
	return nil
}

// deleteNoteRow removes the selected attachment, or the selected note.
func (u *UI) deleteNoteRow(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	row := u.selectedNoteRow()
	if row == nil {
		return nil
	}

	if row.attachment != nil {
		attachmentID := row.attachment.ID
		u.dispatch("delete attachment", func(ctx context.Context) error {
			return u.app.DeleteAttachment(ctx, attachmentID)
		})
		return nil
	}

	noteID := row.note.ID
	u.dispatch("delete note", func(ctx context.Context) error {
		return u.app.DeleteNote(ctx, noteID)
	})
	return nil
}

func (u *UI) uploadToNote(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	row := u.selectedNoteRow()
	if row == nil {
		return nil
	}
	noteID := row.note.ID
	u.openPrompt("Attach file (path to PDF or image)", "", func(ctx context.Context, value string) error {
		return u.app.UploadAttachment(ctx, noteID, value)
	})
	return nil
}

func (u *UI) downloadAttachment(_ *gocui.Gui, _ *gocui.View) error {
	if u.notesBusy() {
		return nil
	}
	row := u.selectedNoteRow()
	if row == nil || row.attachment == nil {
		return nil
	}
	attachment := *row.attachment
	u.dispatch("download attachment", func(ctx context.Context) error {
		_, err := u.app.DownloadAttachment(ctx, attachment)
		return err
	})
	return nil
}

func (u *UI) showNotes(gui *gocui.Gui) error {
	task := u.snap.Notes.Task
	if task == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX*2/3)
	height := max(maxY*2/3, 8)
	x0 := max((maxX-width)/2, 0)
	y0 := max((maxY-height)/2, 0)
	x1 := min(x0+width, maxX-1)
	y1 := min(y0+height, maxY-1)

	view, err := gui.SetView(viewNotes, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = false
	}
	view.Title = "Task Notes: " + format.Truncate(task.Title, 40)
	applyViewStyle(view, true, true)
	view.Clear()

	rows := buildNoteRows(task)
	if len(rows) == 0 {
		fmt.Fprint(view, "No notes yet. Press a to add one.")
		return nil
	}
	for i, row := range rows {
		prefix := " "
		if i == u.selectedNote {
			prefix = ">"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatNoteRow(row))
	}
	view.SetCursor(0, u.selectedNote)
	return nil
}
