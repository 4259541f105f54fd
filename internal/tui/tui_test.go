package tui

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Joseda-hg/lazytracker/internal/api"
	"github.com/Joseda-hg/lazytracker/internal/app"
	"github.com/Joseda-hg/lazytracker/internal/apitest"
	"github.com/Joseda-hg/lazytracker/internal/db"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

func TestChooseUserLoadsTasks(t *testing.T) {
	ui, server, _ := newTestUI(t)
	server.SeedTask(model.TaskInput{Title: "Review", AssignedTo: 1})

	if ui.snap.User != nil {
		t.Fatalf("expected no user at cold start")
	}
	login(t, ui, 0)

	if ui.snap.User == nil || ui.snap.User.Username != "alice" {
		t.Fatalf("expected alice to be logged in, got %+v", ui.snap.User)
	}
	if ui.usersActive {
		t.Fatalf("expected user picker to close")
	}
	if len(ui.snap.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(ui.snap.Tasks))
	}
	if ui.status != "Welcome, Alice!" {
		t.Fatalf("expected greeting, got %q", ui.status)
	}
}

func TestTabSwitchDoesNotFetch(t *testing.T) {
	ui, server, _ := newTestUI(t)
	alice := int64(1)
	server.SeedTask(model.TaskInput{Title: "For Bob", AssignedTo: 2, AssignedBy: &alice})
	login(t, ui, 0)
	server.ResetRequests()

	if err := ui.nextTab(nil, nil); err != nil {
		t.Fatalf("next tab: %v", err)
	}

	if len(server.Requests()) != 0 {
		t.Fatalf("expected no requests, got %+v", server.Requests())
	}
	if ui.snap.ActiveTab != model.TabAssignedByMe {
		t.Fatalf("expected assigned_by_me, got %q", ui.snap.ActiveTab)
	}
	if len(ui.snap.Tasks) != 1 || ui.snap.Tasks[0].Title != "For Bob" {
		t.Fatalf("expected the task assigned by alice, got %+v", ui.snap.Tasks)
	}

	if err := ui.prevTab(nil, nil); err != nil {
		t.Fatalf("prev tab: %v", err)
	}
	if ui.snap.ActiveTab != model.TabAssignedToMe {
		t.Fatalf("expected assigned_to_me, got %q", ui.snap.ActiveTab)
	}
}

func TestToggleCompleteFromList(t *testing.T) {
	ui, server, _ := newTestUI(t)
	created := server.SeedTask(model.TaskInput{Title: "Toggle status", AssignedTo: 1})
	login(t, ui, 0)

	if err := ui.toggleComplete(nil, nil); err != nil {
		t.Fatalf("toggle complete: %v", err)
	}
	stored, _ := server.Task(created.ID)
	if !stored.IsCompleted() || stored.CompletedAt == nil {
		t.Fatalf("expected completed task with timestamp, got %+v", stored)
	}
	if !ui.snap.Tasks[0].IsCompleted() {
		t.Fatalf("expected list to show the completed task")
	}

	if err := ui.toggleComplete(nil, nil); err != nil {
		t.Fatalf("toggle complete again: %v", err)
	}
	stored, _ = server.Task(created.ID)
	if stored.Status != model.StatusPending || stored.CompletedAt != nil {
		t.Fatalf("expected reopened task without timestamp, got %+v", stored)
	}
}

func TestFormCreatesTaskForChosenAssignee(t *testing.T) {
	ui, server, _ := newTestUI(t)
	login(t, ui, 0)

	if err := ui.addTask(nil, nil); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if ui.form == nil {
		t.Fatalf("expected form to open")
	}
	if got := ui.form.fields[fieldAssignee].Value; got != "Alice" {
		t.Fatalf("expected assignee to default to Alice, got %q", got)
	}

	ui.form.fields[fieldTitle].Value = "Prepare demo"
	ui.form.fields[fieldDescription].Value = "Slides and script"
	ui.form.cycleAssignee(1)

	if err := ui.submitFormNow(nil, nil); err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected form to close after a successful submit")
	}

	stored, ok := server.Task(1)
	if !ok {
		t.Fatalf("expected task to be created")
	}
	if stored.AssignedTo != 2 || stored.AssignedBy == nil || *stored.AssignedBy != 1 {
		t.Fatalf("expected task from alice to bob, got %+v", stored)
	}
	if ui.snap.TabCounts[model.TabAssignedByMe] != 1 {
		t.Fatalf("expected assigned_by_me count 1, got %d", ui.snap.TabCounts[model.TabAssignedByMe])
	}
}

func TestFormValidationSendsNothing(t *testing.T) {
	ui, server, _ := newTestUI(t)
	login(t, ui, 0)
	if err := ui.addTask(nil, nil); err != nil {
		t.Fatalf("add task: %v", err)
	}
	server.ResetRequests()

	if err := ui.submitFormNow(nil, nil); err != nil {
		t.Fatalf("submit form: %v", err)
	}

	if ui.status != "title is required" {
		t.Fatalf("expected validation message, got %q", ui.status)
	}
	if ui.form == nil {
		t.Fatalf("expected form to stay open")
	}
	if len(server.Requests()) != 0 {
		t.Fatalf("expected no requests, got %+v", server.Requests())
	}

	if err := ui.cancelForm(nil, nil); err != nil {
		t.Fatalf("cancel form: %v", err)
	}
	ui.refresh()
	if ui.form != nil || ui.snap.Form.Open {
		t.Fatalf("expected form to close on cancel")
	}
}

func TestEditFormFailureKeepsFormOpen(t *testing.T) {
	ui, server, _ := newTestUI(t)
	server.SeedTask(model.TaskInput{Title: "Draft", Description: "v1", AssignedTo: 1})
	login(t, ui, 0)
	if err := ui.editTask(nil, nil); err != nil {
		t.Fatalf("edit task: %v", err)
	}
	if ui.form.fields[fieldTitle].Value != "Draft" {
		t.Fatalf("expected form to be prefilled, got %+v", ui.form.fields)
	}
	server.Fail(http.MethodPut, "/tasks/1", http.StatusInternalServerError)

	ui.form.fields[fieldTitle].Value = "Final"
	if err := ui.submitFormNow(nil, nil); err != nil {
		t.Fatalf("submit form: %v", err)
	}

	if ui.form == nil {
		t.Fatalf("expected form to stay open after a failed update")
	}
	if ui.status != "Failed to update task" {
		t.Fatalf("expected failure message, got %q", ui.status)
	}
	if ui.snap.Tasks[0].Title != "Draft" {
		t.Fatalf("expected list to be untouched, got %q", ui.snap.Tasks[0].Title)
	}
}

func TestStatusFilterCycles(t *testing.T) {
	ui, server, _ := newTestUI(t)
	server.SeedTask(model.TaskInput{Title: "Open", AssignedTo: 1})
	login(t, ui, 0)

	expected := []string{model.StatusPending, model.StatusCompleted, ""}
	for _, want := range expected {
		if err := ui.cycleStatusFilter(nil, nil); err != nil {
			t.Fatalf("cycle filter: %v", err)
		}
		if got := ui.snap.Filters.Get(model.FilterStatus); got != want {
			t.Fatalf("expected status filter %q, got %q", want, got)
		}
	}
	if !ui.snap.Filters.IsEmpty() {
		t.Fatalf("expected filters to be empty, got %+v", ui.snap.Filters)
	}
}

func TestLogoutReopensUserPicker(t *testing.T) {
	ui, _, store := newTestUI(t)
	login(t, ui, 1)

	if err := ui.logout(nil, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if ui.snap.User != nil {
		t.Fatalf("expected no user after logout")
	}
	if !ui.usersActive {
		t.Fatalf("expected user picker to open")
	}
	persisted, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if persisted != nil {
		t.Fatalf("expected persisted session to be cleared, got %+v", persisted)
	}
}

func TestNotesFlow(t *testing.T) {
	downloads := t.TempDir()
	ui, server, _ := newTestUIWithDownloads(t, downloads)
	server.SeedTask(model.TaskInput{Title: "Invoice", AssignedTo: 1})
	login(t, ui, 0)

	if err := ui.openNotes(nil, nil); err != nil {
		t.Fatalf("open notes: %v", err)
	}
	if !ui.snap.Notes.Open || ui.activeModal() != viewNotes {
		t.Fatalf("expected notes modal to be open")
	}

	if err := ui.addNote(nil, nil); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if ui.prompt == nil {
		t.Fatalf("expected note prompt")
	}
	if err := ui.submitPromptValue(nil, " paid in full "); err != nil {
		t.Fatalf("submit note: %v", err)
	}
	rows := buildNoteRows(ui.snap.Notes.Task)
	if len(rows) != 1 || rows[0].note.Content != "paid in full" {
		t.Fatalf("expected one note, got %+v", rows)
	}

	path := filepath.Join(t.TempDir(), "receipt.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ui.uploadToNote(nil, nil); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := ui.submitPromptValue(nil, path); err != nil {
		t.Fatalf("submit path: %v", err)
	}
	rows = buildNoteRows(ui.snap.Notes.Task)
	if len(rows) != 2 || rows[1].attachment == nil {
		t.Fatalf("expected note plus attachment rows, got %+v", rows)
	}

	if err := ui.nextNoteRow(nil, nil); err != nil {
		t.Fatalf("next row: %v", err)
	}
	if err := ui.downloadAttachment(nil, nil); err != nil {
		t.Fatalf("download: %v", err)
	}
	if _, err := os.Stat(filepath.Join(downloads, "receipt.pdf")); err != nil {
		t.Fatalf("expected downloaded file: %v", err)
	}

	if err := ui.deleteNoteRow(nil, nil); err != nil {
		t.Fatalf("delete attachment: %v", err)
	}
	rows = buildNoteRows(ui.snap.Notes.Task)
	if len(rows) != 1 || rows[0].attachment != nil {
		t.Fatalf("expected attachment to be removed, got %+v", rows)
	}
	if ui.selectedNote != 0 {
		t.Fatalf("expected selection to clamp to the remaining row, got %d", ui.selectedNote)
	}

	if err := ui.closeNotes(nil, nil); err != nil {
		t.Fatalf("close notes: %v", err)
	}
	if ui.snap.Notes.Open {
		t.Fatalf("expected notes modal to close")
	}
}

func TestRejectedUploadReportsWithoutRequest(t *testing.T) {
	ui, server, _ := newTestUI(t)
	server.SeedTask(model.TaskInput{Title: "Invoice", AssignedTo: 1})
	login(t, ui, 0)
	if err := ui.openNotes(nil, nil); err != nil {
		t.Fatalf("open notes: %v", err)
	}
	if err := ui.addNote(nil, nil); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if err := ui.submitPromptValue(nil, "see file"); err != nil {
		t.Fatalf("submit note: %v", err)
	}

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	server.ResetRequests()

	if err := ui.uploadToNote(nil, nil); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := ui.submitPromptValue(nil, path); err != nil {
		t.Fatalf("submit path: %v", err)
	}

	if len(server.Requests()) != 0 {
		t.Fatalf("expected no requests, got %+v", server.Requests())
	}
	if ui.status != "Only PDF and image files (JPEG, PNG, GIF, WebP) are allowed" {
		t.Fatalf("unexpected status %q", ui.status)
	}
}

func TestParseFormFieldsRequiresEverything(t *testing.T) {
	users := apitest.DefaultUsers
	form := newFormState(nil, users, nil)
	form.fields[fieldTitle].Value = "Title"

	if _, err := parseFormFields(form); err == nil || err.Error() != "description is required" {
		t.Fatalf("expected description error, got %v", err)
	}

	form.fields[fieldDescription].Value = "Body"
	if _, err := parseFormFields(form); err == nil || err.Error() != "select a user to assign" {
		t.Fatalf("expected assignee error, got %v", err)
	}

	form.cycleAssignee(1)
	draft, err := parseFormFields(form)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if draft != (app.TaskDraft{Title: "Title", Description: "Body", AssignedTo: 1}) {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestCycleTabWraps(t *testing.T) {
	if got := cycleTab(model.TabAllTasks, 1); got != model.TabAssignedToMe {
		t.Fatalf("expected wrap to assigned_to_me, got %q", got)
	}
	if got := cycleTab(model.TabAssignedToMe, -1); got != model.TabAllTasks {
		t.Fatalf("expected wrap to all_tasks, got %q", got)
	}
}

func TestComputeLayoutKeepsListReadable(t *testing.T) {
	if got := computeLayout(200).listWidth; got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
	if got := computeLayout(10).listWidth; got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}

func TestPendingConfirmBlocksSecondDelete(t *testing.T) {
	ui, server, _ := newTestUI(t)
	server.SeedTask(model.TaskInput{Title: "Keep me", AssignedTo: 1})
	login(t, ui, 0)

	ui.confirming.Store(true)

	if ui.Confirm(context.Background(), "Delete again?") {
		t.Fatalf("expected a second confirm to be declined while one is pending")
	}
	if !ui.confirming.Load() {
		t.Fatalf("expected the pending confirm to stay claimed")
	}
	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if got := server.Count(http.MethodDelete, "/tasks/1"); got != 0 {
		t.Fatalf("expected no delete request, got %d", got)
	}

	ui.confirm = &confirmState{prompt: "Delete?", answer: make(chan bool, 1)}
	if err := ui.acceptConfirm(nil, nil); err != nil {
		t.Fatalf("accept confirm: %v", err)
	}
	if ui.confirming.Load() {
		t.Fatalf("expected answering to release the confirm")
	}
	if ui.inputActive() {
		t.Fatalf("expected the task list to take input again")
	}
}

func TestEmptyListHintFollowsFilters(t *testing.T) {
	if got := emptyListHint(model.Filters{}); !strings.Contains(got, "Create your first task") {
		t.Fatalf("expected create hint, got %q", got)
	}
	filtered := model.Filters{}.Set(model.FilterStatus, model.StatusCompleted)
	if got := emptyListHint(filtered); !strings.Contains(got, "Try adjusting your filters") {
		t.Fatalf("expected filter hint, got %q", got)
	}
}

func TestRetryUsersFromPicker(t *testing.T) {
	ui, server, _ := newTestUI(t)
	server.Fail(http.MethodGet, "/users", http.StatusBadGateway)
	if err := ui.app.FetchUsers(context.Background()); err == nil {
		t.Fatalf("expected fetch users to fail")
	}
	ui.refresh()
	if len(ui.snap.Users) != 0 {
		t.Fatalf("expected no users after a failed fetch, got %+v", ui.snap.Users)
	}

	server.Recover(http.MethodGet, "/users")
	ui.openUserPicker()
	if err := ui.retryUsers(nil, nil); err != nil {
		t.Fatalf("retry users: %v", err)
	}
	if len(ui.snap.Users) != len(apitest.DefaultUsers) {
		t.Fatalf("expected users after retry, got %+v", ui.snap.Users)
	}
	if !ui.usersActive {
		t.Fatalf("expected the picker to stay open")
	}
}

// login opens the picker and chooses the user at index.
func login(t *testing.T, ui *UI, index int) {
	t.Helper()
	ui.openUserPicker()
	ui.selectedUser = index
	if err := ui.chooseUser(nil, nil); err != nil {
		t.Fatalf("choose user: %v", err)
	}
}

func newTestUI(t *testing.T) (*UI, *apitest.Server, *db.SessionStore) {
	t.Helper()
	return newTestUIWithDownloads(t, t.TempDir())
}

func newTestUIWithDownloads(t *testing.T, downloads string) (*UI, *apitest.Server, *db.SessionStore) {
	t.Helper()
	server, baseURL := apitest.Start(t)

	dbConn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbConn.Close() })
	store := db.NewSessionStore(dbConn)

	ui := newUI(context.Background(), nil, nil)
	ui.app = app.New(api.NewClient(baseURL), app.NewSession(store), app.Options{
		Notifier:    ui,
		Confirmer:   app.ConfirmFunc(func(context.Context, string) bool { return true }),
		DownloadDir: downloads,
	})

	if err := ui.app.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	ui.refresh()
	return ui, server, store
}
