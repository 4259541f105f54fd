// Package app holds the client state and sequences calls to the task service
// in response to user intents.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Joseda-hg/lazytracker/internal/logger"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

// Client is the subset of the REST client the orchestrator drives.
type Client interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	TaskView(ctx context.Context, userID int64, filters model.Filters) (model.TaskViews, error)
	GetTask(ctx context.Context, taskID int64) (model.Task, error)
	CreateTask(ctx context.Context, input model.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, taskID int64, update model.TaskUpdate) (model.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
	CompleteTask(ctx context.Context, taskID int64) (model.Task, error)
	ReopenTask(ctx context.Context, taskID int64) (model.Task, error)
	AddNote(ctx context.Context, taskID int64, content string) (model.Task, error)
	UpdateNote(ctx context.Context, noteID int64, content string) (model.Note, error)
	DeleteNote(ctx context.Context, noteID int64) error
	UploadAttachment(ctx context.Context, noteID int64, path string) (model.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID int64) error
	DownloadAttachment(ctx context.Context, attachmentID int64, filename, dir string) (string, error)
}

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

type Notification struct {
	Level   Level
	Message string
}

// Notifier presents notifications to the user. It must not block.
type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var (
	ErrNotLoggedIn  = errors.New("no user selected")
	ErrNoTaskOpen   = errors.New("no task notes open")
	ErrUnknownUser  = errors.New("unknown user")
	errNotConfirmed = errors.New("not confirmed")
)

type Options struct {
	Notifier    Notifier
	Confirmer   Confirmer
	Logger      *slog.Logger
	DownloadDir string
}

// FormState describes the task form modal. Editing is nil when creating.
type FormState struct {
	Open    bool
	Editing *model.Task
}

// NotesState describes the notes modal and the task it shows.
type NotesState struct {
	Open bool
	Task *model.Task
}

// App owns all mutable UI state. Intents may be called from any goroutine;
// state is only replaced after a request completes.
type App struct {
	client      Client
	session     *Session
	notifier    Notifier
	confirmer   Confirmer
	log         *slog.Logger
	downloadDir string

	mu         sync.RWMutex
	users      []model.User
	views      model.TaskViews
	activeTab  model.Tab
	filters    model.Filters
	loading    bool
	generation uint64 // bumped per list fetch and on logout; only the latest may write views
	form       FormState
	notes      NotesState
	last       *Notification
}

func New(client Client, session *Session, opts Options) *App {
	app := &App{
		client:      client,
		session:     session,
		notifier:    opts.Notifier,
		confirmer:   opts.Confirmer,
		log:         opts.Logger,
		downloadDir: opts.DownloadDir,
		users:       []model.User{},
		views:       model.EmptyTaskViews(),
		activeTab:   model.TabAssignedToMe,
		filters:     model.Filters{},
	}
	if app.notifier == nil {
		app.notifier = NotifierFunc(func(Notification) {})
	}
	if app.confirmer == nil {
		app.confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
	}
	if app.log == nil {
		app.log = logger.Get()
	}
	if app.downloadDir == "" {
		app.downloadDir = "."
	}
	return app
}

// Start restores the session and loads the user list. Failures are reported
// and returned but leave the app usable.
func (a *App) Start(ctx context.Context) error {
	var errs []error

	user, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Warn("restore session", "error", err)
		a.report(LevelError, "Failed to restore session")
		errs = append(errs, err)
	}

	if err := a.FetchUsers(ctx); err != nil {
		errs = append(errs, err)
	}

	if user != nil {
		a.log.Info("session restored", "user", user.Username)
		if err := a.Reload(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) FetchUsers(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		a.log.Error("fetch users", "error", err)
		a.mu.Lock()
		a.users = []model.User{}
		a.mu.Unlock()
		a.report(LevelError, "Failed to load users")
		return err
	}

	a.mu.Lock()
	a.users = users
	a.mu.Unlock()
	return nil
}

// Reload fetches the three categorized lists with the current filters. It is
// the single refresh path used after every successful mutation.
func (a *App) Reload(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		return nil
	}

	a.mu.Lock()
	a.generation++
	generation := a.generation
	filters := a.filters.Clone()
	a.loading = true
	a.mu.Unlock()

	views, err := a.client.TaskView(ctx, user.ID, filters)

	a.mu.Lock()
	if generation != a.generation {
		// A newer fetch or a logout superseded this one.
		a.mu.Unlock()
		a.log.Debug("discard stale task lists", "user", user.Username, "filters", filters)
		return nil
	}
	a.loading = false
	if current := a.session.User(); current == nil || current.ID != user.ID {
		a.mu.Unlock()
		return nil
	}
	if err != nil {
		a.views = model.EmptyTaskViews()
		a.mu.Unlock()
		a.log.Error("fetch tasks", "error", err, "user", user.Username)
		a.report(LevelError, "Failed to load tasks")
		return err
	}
	a.views = views.Normalize()
	a.mu.Unlock()
	return nil
}

func (a *App) SelectUser(ctx context.Context, user model.User) error {
	if err := a.session.Login(ctx, user); err != nil {
		a.log.Warn("persist session", "error", err)
		a.report(LevelError, "Failed to save session")
	}
	a.log.Info("user selected", "user", user.Username)
	a.report(LevelSuccess, fmt.Sprintf("Welcome, %s!", user.DisplayName))
	return a.Reload(ctx)
}

// SelectUserByName logs in the known user whose username or display name
// matches name, ignoring case.
func (a *App) SelectUserByName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	a.mu.RLock()
	var match *model.User
	for i := range a.users {
		user := a.users[i]
		if strings.EqualFold(user.Username, name) || strings.EqualFold(user.DisplayName, name) {
			match = &user
			break
		}
	}
	a.mu.RUnlock()

	if match == nil {
		a.report(LevelError, fmt.Sprintf("Unknown user %q", name))
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	return a.SelectUser(ctx, *match)
}

func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)

	a.mu.Lock()
	a.generation++
	a.loading = false
	a.filters = model.Filters{}
	a.views = model.EmptyTaskViews()
	a.form = FormState{}
	a.notes = NotesState{}
	a.mu.Unlock()

	if err != nil {
		a.log.Warn("clear session", "error", err)
		a.report(LevelError, "Failed to clear session")
		return err
	}
	a.report(LevelSuccess, "Logged out successfully")
	return nil
}

// SetTab only changes which fetched list is displayed.
func (a *App) SetTab(tab model.Tab) {
	if _, ok := model.ParseTab(string(tab)); !ok {
		return
	}
	a.mu.Lock()
	a.activeTab = tab
	a.mu.Unlock()
}

// SetFilter assigns a filter value; an empty value removes the key.
func (a *App) SetFilter(ctx context.Context, key, value string) error {
	a.mu.Lock()
	a.filters = a.filters.Set(key, value)
	a.mu.Unlock()
	return a.Reload(ctx)
}

func (a *App) ClearFilters(ctx context.Context) error {
	a.mu.Lock()
	a.filters = model.Filters{}
	a.mu.Unlock()
	return a.Reload(ctx)
}

func (a *App) report(level Level, message string) {
	notification := Notification{Level: level, Message: message}
	a.mu.Lock()
	a.last = &notification
	a.mu.Unlock()
	a.notifier.Notify(notification)
}

// mutate runs one mutating call with the shared protocol: report the outcome,
// and on success run onSuccess then invalidate.
func (a *App) mutate(ctx context.Context, success, failure string, call func() error, onSuccess func()) error {
	if err := call(); err != nil {
		a.log.Error(strings.ToLower(failure), "error", err)
		a.report(LevelError, failure)
		return err
	}
	a.report(LevelSuccess, success)
	if onSuccess != nil {
		onSuccess()
	}
	a.invalidate(ctx)
	return nil
}

// invalidate re-fetches the task shown in the notes modal, if any, and then
// the categorized lists. The two refreshes are independent.
func (a *App) invalidate(ctx context.Context) {
	if a.openTaskID() != 0 {
		_ = a.RefreshSelected(ctx)
	}
	_ = a.Reload(ctx)
}

func (a *App) confirm(ctx context.Context, prompt string) error {
	if !a.confirmer.Confirm(ctx, prompt) {
		a.log.Debug("action cancelled", "prompt", prompt)
		return errNotConfirmed
	}
	return nil
}

// IsCancelled reports whether err came from a declined confirmation.
func IsCancelled(err error) bool {
	return errors.Is(err, errNotConfirmed)
}
