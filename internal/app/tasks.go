package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

// TaskDraft is what the task form submits.
type TaskDraft struct {
	Title       string
	Description string
	AssignedTo  int64
}

func (a *App) OpenCreateForm() {
	a.mu.Lock()
	a.form = FormState{Open: true}
	a.mu.Unlock()
}

func (a *App) OpenEditForm(task model.Task) {
	a.mu.Lock()
	a.form = FormState{Open: true, Editing: &task}
	a.mu.Unlock()
}

func (a *App) CloseForm() {
	a.mu.Lock()
	a.form = FormState{}
	a.mu.Unlock()
}

// SubmitTask creates a task, or updates the one being edited. The form stays
// open when the call fails.
func (a *App) SubmitTask(ctx context.Context, draft TaskDraft) error {
	a.mu.RLock()
	editing := a.form.Editing
	a.mu.RUnlock()

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)

	if editing != nil {
		update := model.TaskUpdate{
			Title:       &draft.Title,
			Description: &draft.Description,
			AssignedTo:  &draft.AssignedTo,
		}
		return a.mutate(ctx, "Task updated successfully!", "Failed to update task", func() error {
			_, err := a.client.UpdateTask(ctx, editing.ID, update)
			return err
		}, a.CloseForm)
	}

	input := model.TaskInput{
		Title:       draft.Title,
		Description: draft.Description,
		AssignedTo:  draft.AssignedTo,
	}
	if user := a.session.User(); user != nil {
		input.AssignedBy = &user.ID
	}
	return a.mutate(ctx, "Task created successfully!", "Failed to create task", func() error {
		_, err := a.client.CreateTask(ctx, input)
		return err
	}, a.CloseForm)
}

// DeleteTask asks for confirmation and sends nothing when declined.
func (a *App) DeleteTask(ctx context.Context, task model.Task) error {
	if err := a.confirm(ctx, fmt.Sprintf("Are you sure you want to delete %q?", task.Title)); err != nil {
		return err
	}
	return a.mutate(ctx, "Task deleted successfully!", "Failed to delete task", func() error {
		return a.client.DeleteTask(ctx, task.ID)
	}, func() {
		a.mu.Lock()
		if a.notes.Task != nil && a.notes.Task.ID == task.ID {
			a.notes = NotesState{}
		}
		a.mu.Unlock()
	})
}

// ToggleComplete reopens a completed task and completes anything else.
func (a *App) ToggleComplete(ctx context.Context, task model.Task) error {
	if task.IsCompleted() {
		return a.mutate(ctx, "Task reopened!", "Failed to update task status", func() error {
			_, err := a.client.ReopenTask(ctx, task.ID)
			return err
		}, nil)
	}
	return a.mutate(ctx, "Task completed!", "Failed to update task status", func() error {
		_, err := a.client.CompleteTask(ctx, task.ID)
		return err
	}, nil)
}
