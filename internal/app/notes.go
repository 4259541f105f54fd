package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazytracker/internal/api"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

// ViewNotes opens the notes modal with a fresh copy of task.
func (a *App) ViewNotes(ctx context.Context, task model.Task) error {
	fresh, err := a.client.GetTask(ctx, task.ID)
	if err != nil {
		a.log.Error("fetch task notes", "error", err, "task", task.ID)
		a.report(LevelError, "Failed to load task notes")
		return err
	}

	a.mu.Lock()
	a.notes = NotesState{Open: true, Task: &fresh}
	a.mu.Unlock()
	return nil
}

func (a *App) CloseNotes() {
	a.mu.Lock()
	a.notes = NotesState{}
	a.mu.Unlock()
}

// RefreshSelected re-fetches the task shown in the notes modal. A failure is
// logged and the previous copy kept.
func (a *App) RefreshSelected(ctx context.Context) error {
	taskID := a.openTaskID()
	if taskID == 0 {
		return ErrNoTaskOpen
	}

	fresh, err := a.client.GetTask(ctx, taskID)
	if err != nil {
		a.log.Error("refresh selected task", "error", err, "task", taskID)
		return err
	}

	a.mu.Lock()
	if a.notes.Open && a.notes.Task != nil && a.notes.Task.ID == taskID {
		a.notes.Task = &fresh
	}
	a.mu.Unlock()
	return nil
}

func (a *App) openTaskID() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.notes.Open || a.notes.Task == nil {
		return 0
	}
	return a.notes.Task.ID
}

// AddNote appends a note to the open task. Blank content is ignored.
func (a *App) AddNote(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	taskID := a.openTaskID()
	if taskID == 0 {
		return ErrNoTaskOpen
	}
	return a.mutate(ctx, "Note added!", "Failed to add note", func() error {
		_, err := a.client.AddNote(ctx, taskID, content)
		return err
	}, nil)
}

// UpdateNote replaces a note's content. Blank content is ignored.
func (a *App) UpdateNote(ctx context.Context, noteID int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	return a.mutate(ctx, "Note updated!", "Failed to update note", func() error {
		_, err := a.client.UpdateNote(ctx, noteID, content)
		return err
	}, nil)
}

// DeleteNote asks for confirmation and sends nothing when declined.
func (a *App) DeleteNote(ctx context.Context, noteID int64) error {
	if err := a.confirm(ctx, "Are you sure you want to delete this note?"); err != nil {
		return err
	}
	return a.mutate(ctx, "Note deleted!", "Failed to delete note", func() error {
		return a.client.DeleteNote(ctx, noteID)
	}, nil)
}

// UploadAttachment attaches the file at path to a note. Files rejected by the
// local checks are reported without a request.
func (a *App) UploadAttachment(ctx context.Context, noteID int64, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	_, err := a.client.UploadAttachment(ctx, noteID, path)
	if err != nil {
		a.log.Error("upload attachment", "error", err, "note", noteID, "path", path)
		a.report(LevelError, uploadFailure(err))
		return err
	}
	a.report(LevelSuccess, "File uploaded successfully!")
	a.invalidate(ctx)
	return nil
}

func uploadFailure(err error) string {
	switch {
	case errors.Is(err, api.ErrUnsupportedType):
		return "Only PDF and image files (JPEG, PNG, GIF, WebP) are allowed"
	case errors.Is(err, api.ErrFileTooLarge):
		return "File size must be less than 10MB"
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Failed to upload file"
}

func (a *App) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return a.mutate(ctx, "Attachment deleted successfully!", "Failed to delete attachment", func() error {
		return a.client.DeleteAttachment(ctx, attachmentID)
	}, nil)
}

// DownloadAttachment saves the attachment into the download directory and
// returns the written path.
func (a *App) DownloadAttachment(ctx context.Context, attachment model.Attachment) (string, error) {
	path, err := a.client.DownloadAttachment(ctx, attachment.ID, attachment.Filename, a.downloadDir)
	if err != nil {
		a.log.Error("download attachment", "error", err, "attachment", attachment.ID)
		a.report(LevelError, "Failed to download file")
		return "", err
	}
	a.log.Info("attachment saved", "attachment", attachment.ID, "path", path)
	a.report(LevelSuccess, fmt.Sprintf("Saved %s", path))
	return path, nil
}
