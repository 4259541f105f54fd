package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

type noteBody struct {
	Content string `json:"content"`
}

// AddNote returns the parent task as the service sees it after the insert.
func (c *Client) AddNote(ctx context.Context, taskID int64, content string) (model.Task, error) {
	var task model.Task
	err := c.doJSON(ctx, http.MethodPost, taskPath(taskID)+"/notes", nil, noteBody{Content: content}, &task)
	return task, err
}

func (c *Client) UpdateNote(ctx context.Context, noteID int64, content string) (model.Note, error) {
	var note model.Note
	err := c.doJSON(ctx, http.MethodPut, notePath(noteID), nil, noteBody{Content: content}, &note)
	return note, err
}

func (c *Client) DeleteNote(ctx context.Context, noteID int64) error {
	return c.doJSON(ctx, http.MethodDelete, notePath(noteID), nil, nil, nil)
}

func notePath(noteID int64) string {
	return fmt.Sprintf("/notes/%d", noteID)
}
