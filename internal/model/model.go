package model

import (
	"strings"
	"time"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	AssignedTo   int64      `json:"assigned_to"`
	AssignedBy   *int64     `json:"assigned_by,omitempty"`
	AssignedUser User       `json:"assigned_user"`
	CreatedAt    Timestamp  `json:"created_at"`
	CompletedAt  *Timestamp `json:"completed_at"`
	Notes        []Note     `json:"notes"`
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// CompletedTime returns the zero time when the task has no completion timestamp.
func (t Task) CompletedTime() time.Time {
	if t.CompletedAt == nil {
		return time.Time{}
	}
	return t.CompletedAt.Time
}

type Note struct {
	ID          int64        `json:"id"`
	TaskID      int64        `json:"task_id"`
	Content     string       `json:"content"`
	CreatedAt   Timestamp    `json:"created_at"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt Timestamp `json:"created_at"`
}

func (a Attachment) IsPDF() bool {
	return a.FileType == "pdf"
}

type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  int64  `json:"assigned_to"`
	AssignedBy  *int64 `json:"assigned_by,omitempty"`
}

// TaskUpdate carries only the fields being changed.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *int64  `json:"assigned_to,omitempty"`
	Status      *string `json:"status,omitempty"`
}

const (
	FilterStatus     = "status"
	FilterAssignedTo = "assigned_to"
)

// Filters holds the optional constraints sent with the categorized view request.
// A key is either present with a non-empty value or absent.
type Filters map[string]string

// Set assigns value to key; an empty value removes the key.
func (f Filters) Set(key, value string) Filters {
	next := f.Clone()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(next, key)
		return next
	}
	next[key] = value
	return next
}

func (f Filters) Clone() Filters {
	next := make(Filters, len(f))
	for key, value := range f {
		next[key] = value
	}
	return next
}

func (f Filters) Get(key string) string {
	return f[key]
}

func (f Filters) IsEmpty() bool {
	return len(f) == 0
}

type Tab string

const (
	TabAssignedToMe Tab = "assigned_to_me"
	TabAssignedByMe Tab = "assigned_by_me"
	TabAllTasks     Tab = "all_tasks"
)

var Tabs = []Tab{TabAssignedToMe, TabAssignedByMe, TabAllTasks}

func (t Tab) Label() string {
	switch t {
	case TabAssignedToMe:
		return "Assigned to Me"
	case TabAssignedByMe:
		return "Assigned by Me"
	case TabAllTasks:
		return "All Tasks"
	default:
		return string(t)
	}
}

func ParseTab(value string) (Tab, bool) {
	for _, tab := range Tabs {
		if string(tab) == value {
			return tab, true
		}
	}
	return "", false
}

type TaskViews struct {
	AssignedToMe []Task `json:"assigned_to_me"`
	AssignedByMe []Task `json:"assigned_by_me"`
	AllTasks     []Task `json:"all_tasks"`
}

func EmptyTaskViews() TaskViews {
	return TaskViews{
		AssignedToMe: []Task{},
		AssignedByMe: []Task{},
		AllTasks:     []Task{},
	}
}

// List returns the list for tab, or an empty list for an unknown tab.
func (v TaskViews) List(tab Tab) []Task {
	var tasks []Task
	switch tab {
	case TabAssignedToMe:
		tasks = v.AssignedToMe
	case TabAssignedByMe:
		tasks = v.AssignedByMe
	case TabAllTasks:
		tasks = v.AllTasks
	}
	if tasks == nil {
		return []Task{}
	}
	return tasks
}

// Normalize replaces missing lists with empty ones.
func (v TaskViews) Normalize() TaskViews {
	return TaskViews{
		AssignedToMe: v.List(TabAssignedToMe),
		AssignedByMe: v.List(TabAssignedByMe),
		AllTasks:     v.List(TabAllTasks),
	}
}

type Stats struct {
	Total     int
	Pending   int
	Completed int
}

func ComputeStats(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case StatusPending:
			stats.Pending++
		case StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}
