package tui

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazytracker/internal/app"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

type formField struct {
	Label string
	Value string
}

const (
	fieldTitle = iota
	fieldDescription
	fieldAssignee
)

// formState holds the task form while it is open. assignee indexes users.
type formState struct {
	taskID   int64
	fields   []formField
	index    int
	users    []model.User
	assignee int
}

// newFormState prefills from task, or defaults the assignee to current when
// creating.
func newFormState(task *model.Task, users []model.User, current *model.User) *formState {
	form := &formState{
		fields: []formField{
			{Label: "Title"},
			{Label: "Description"},
			{Label: "Assign to (space/←→)"},
		},
		users:    users,
		assignee: -1,
	}

	assignedTo := int64(0)
	if task != nil {
		form.taskID = task.ID
		form.fields[fieldTitle].Value = task.Title
		form.fields[fieldDescription].Value = task.Description
		assignedTo = task.AssignedTo
	} else if current != nil {
		assignedTo = current.ID
	}

	for i, user := range users {
		if user.ID == assignedTo {
			form.assignee = i
			break
		}
	}
	form.syncAssignee()
	return form
}

func (f *formState) cycleAssignee(delta int) {
	if len(f.users) == 0 {
		return
	}
	if f.assignee < 0 {
		f.assignee = 0
	} else {
		f.assignee = (f.assignee + delta + len(f.users)) % len(f.users)
	}
	f.syncAssignee()
}

func (f *formState) syncAssignee() {
	if f.assignee < 0 || f.assignee >= len(f.users) {
		f.fields[fieldAssignee].Value = "Select user..."
		return
	}
	f.fields[fieldAssignee].Value = f.users[f.assignee].DisplayName
}

func parseFormFields(form *formState) (app.TaskDraft, error) {
	title := strings.TrimSpace(form.fields[fieldTitle].Value)
	if title == "" {
		return app.TaskDraft{}, fmt.Errorf("title is required")
	}
	description := strings.TrimSpace(form.fields[fieldDescription].Value)
	if description == "" {
		return app.TaskDraft{}, fmt.Errorf("description is required")
	}
	if form.assignee < 0 || form.assignee >= len(form.users) {
		return app.TaskDraft{}, fmt.Errorf("select a user to assign")
	}

	return app.TaskDraft{
		Title:       title,
		Description: description,
		AssignedTo:  form.users[form.assignee].ID,
	}, nil
}

func isAssigneeField(index int) bool {
	return index == fieldAssignee
}
