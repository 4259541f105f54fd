package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/lazytracker/internal/app"
	"github.com/Joseda-hg/lazytracker/internal/logger"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

const (
	viewHeader  = "header"
	viewTabs    = "tabs"
	viewTasks   = "tasks"
	viewDetail  = "detail"
	viewFooter  = "footer"
	viewUsers   = "users"
	viewForm    = "form"
	viewNotes   = "notes"
	viewPrompt  = "prompt"
	viewConfirm = "confirm"
	viewHelp    = "help"
)

type UI struct {
	app *app.App
	gui *gocui.Gui
	ctx context.Context
	log *slog.Logger
	now func() time.Time

	snap app.Snapshot

	selectedTask int
	selectedUser int
	selectedNote int

	usersActive bool
	helpActive  bool
	form        *formState
	formEditor  *formEditor
	prompt      *promptState
	confirm     *confirmState
	status      string

	// confirming is claimed by Confirm before the dialog reaches the main
	// loop and released once it is answered.
	confirming atomic.Bool
}

type formEditor struct {
	ui *UI
}

func newUI(ctx context.Context, gui *gocui.Gui, log *slog.Logger) *UI {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logger.Get()
	}
	ui := &UI{
		gui: gui,
		ctx: ctx,
		log: log,
		now: time.Now,
	}
	ui.formEditor = &formEditor{ui: ui}
	return ui
}

// Run builds the orchestrator around the terminal UI and blocks until the
// user quits.
func Run(ctx context.Context, client app.Client, session *app.Session, opts app.Options) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(ctx, gui, opts.Logger)
	opts.Notifier = ui
	opts.Confirmer = ui
	ui.app = app.New(client, session, opts)

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}

	if err := ui.app.Start(ctx); err != nil {
		ui.log.Warn("startup incomplete", "error", err)
	}
	ui.refresh()
	if ui.snap.User == nil {
		ui.openUserPicker()
	}

	if err := gui.MainLoop(); err != nil && !goerrors.Is(err, gocui.ErrQuit) {
		return err
	}

	return nil
}

// dispatch runs an intent off the main loop and redraws when it finishes.
// Without a gui the intent runs inline.
func (u *UI) dispatch(name string, intent func(context.Context) error) {
	if u.gui == nil {
		u.logIntent(name, intent(u.ctx))
		u.refresh()
		return
	}

	go func() {
		u.logIntent(name, intent(u.ctx))
		u.gui.Update(func(*gocui.Gui) error {
			u.refresh()
			return nil
		})
	}()
}

func (u *UI) logIntent(name string, err error) {
	if err == nil || app.IsCancelled(err) {
		return
	}
	u.log.Debug("intent failed", "intent", name, "error", err)
}

// Notify shows the message in the footer.
func (u *UI) Notify(n app.Notification) {
	if u.gui == nil {
		u.status = n.Message
		return
	}
	u.gui.Update(func(*gocui.Gui) error {
		u.status = n.Message
		return nil
	})
}

// refresh pulls a fresh snapshot and keeps the local selection in range.
func (u *UI) refresh() {
	if u.app == nil {
		return
	}
	u.snap = u.app.Snapshot()

	if u.selectedTask >= len(u.snap.Tasks) {
		u.selectedTask = max(len(u.snap.Tasks)-1, 0)
	}
	if u.selectedUser >= len(u.snap.Users) {
		u.selectedUser = max(len(u.snap.Users)-1, 0)
	}
	if !u.snap.Form.Open {
		u.form = nil
	}
	rows := buildNoteRows(u.snap.Notes.Task)
	if !u.snap.Notes.Open {
		u.selectedNote = 0
	} else if u.selectedNote >= len(rows) {
		u.selectedNote = max(len(rows)-1, 0)
	}
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	if err := gui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'q', gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'r', gocui.ModNone, u.reload); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'u', gocui.ModNone, u.switchUser); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'L', gocui.ModNone, u.logout); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'f', gocui.ModNone, u.cycleStatusFilter); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'g', gocui.ModNone, u.clearFilters); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'a', gocui.ModNone, u.addTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'e', gocui.ModNone, u.editTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'd', gocui.ModNone, u.deleteTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'x', gocui.ModNone, u.toggleComplete); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", '?', gocui.ModNone, u.toggleHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", gocui.KeyTab, gocui.ModNone, u.nextTab); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", gocui.KeyBacktab, gocui.ModNone, u.prevTab); err != nil {
		return err
	}
	for i, tab := range model.Tabs {
		tab := tab
		key := rune('1' + i)
		if err := gui.SetKeybinding("", key, gocui.ModNone, func(gui *gocui.Gui, _ *gocui.View) error {
			return u.selectTab(tab)
		}); err != nil {
			return err
		}
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyArrowDown, gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'j', gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyArrowUp, gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'k', gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyEnter, gocui.ModNone, u.openNotes); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'n', gocui.ModNone, u.openNotes); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEnter, gocui.ModNone, u.submitFormNow); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyTab, gocui.ModNone, u.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyBacktab, gocui.ModNone, u.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyArrowDown, gocui.ModNone, u.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyArrowUp, gocui.ModNone, u.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEsc, gocui.ModNone, u.cancelForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, gocui.KeyEsc, gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, '?', gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := u.bindDialogKeys(gui); err != nil {
		return err
	}
	return u.bindNotesKeys(gui)
}

func (u *UI) layout(gui *gocui.Gui) error {
	u.refresh()

	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 2, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = true
	headerView.Title = "lazytracker"
	headerView.Wrap = true
	u.renderHeader(headerView)

	tabsView, err := gui.SetView(viewTabs, 0, 3, maxX-1, 5, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	tabsView.Frame = true
	u.renderTabs(tabsView)

	footerY1 := maxY - 1
	footerY0 := max(footerY1-3, 6)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 6
	bodyBottom := footerY0 - 1
	if bodyBottom <= bodyTop {
		return nil
	}

	layout := computeLayout(maxX)
	listX1 := layout.listWidth - 1
	detailX0 := listX1 + 1

	tasksView, err := gui.SetView(viewTasks, 0, bodyTop, listX1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		tasksView.Title = "Tasks"
	}
	applyViewStyle(tasksView, u.activeModal() == "", true)
	u.renderTaskList(tasksView)

	detailView, err := gui.SetView(viewDetail, detailX0, bodyTop, maxX-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		detailView.Title = "Task"
		detailView.Wrap = true
	}
	applyViewStyle(detailView, false, false)
	u.renderDetail(detailView)

	if err := u.layoutModals(gui); err != nil {
		return err
	}

	current := u.activeModal()
	if current == "" {
		current = viewTasks
	}
	_, _ = gui.SetCurrentView(current)
	gui.Cursor = u.form != nil || u.prompt != nil

	return nil
}

func (u *UI) layoutModals(gui *gocui.Gui) error {
	modals := []struct {
		name   string
		active bool
		show   func(*gocui.Gui) error
	}{
		{viewUsers, u.usersActive, u.showUserPicker},
		{viewNotes, u.snap.Notes.Open, u.showNotes},
		{viewForm, u.form != nil, u.showForm},
		{viewHelp, u.helpActive, u.showHelp},
		{viewPrompt, u.prompt != nil, u.showPrompt},
		{viewConfirm, u.confirm != nil, u.showConfirm},
	}
	for _, modal := range modals {
		if !modal.active {
			_ = gui.DeleteView(modal.name)
			continue
		}
		if err := modal.show(gui); err != nil {
			return err
		}
		_, _ = gui.SetViewOnTop(modal.name)
	}
	return nil
}

// activeModal returns the view that owns input, or "" when the task list does.
func (u *UI) activeModal() string {
	switch {
	case u.confirm != nil:
		return viewConfirm
	case u.prompt != nil:
		return viewPrompt
	case u.helpActive:
		return viewHelp
	case u.form != nil:
		return viewForm
	case u.snap.Notes.Open:
		return viewNotes
	case u.usersActive:
		return viewUsers
	default:
		return ""
	}
}

func (u *UI) inputActive() bool {
	return u.activeModal() != "" || u.confirming.Load()
}

type layout struct {
	listWidth int
}

func computeLayout(width int) layout {
	safeWidth := max(width, 40)
	listWidth := safeWidth * 3 / 5
	if listWidth < 30 {
		listWidth = min(30, safeWidth)
	}
	return layout{listWidth: listWidth}
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()

	userLabel := "nobody (press u)"
	if u.snap.User != nil {
		userLabel = u.snap.User.DisplayName
	}

	statusLabel := u.snap.Filters.Get(model.FilterStatus)
	if statusLabel == "" {
		statusLabel = "All Tasks"
	}

	stats := u.snap.Stats
	fmt.Fprintf(view, "User: %s | Status: %s | Total %d | Pending %d | Completed %d",
		userLabel, statusLabel, stats.Total, stats.Pending, stats.Completed)
	if u.snap.Loading {
		fmt.Fprint(view, " | loading...")
	}
}

func (u *UI) renderTabs(view *gocui.View) {
	view.Clear()
	parts := make([]string, 0, len(model.Tabs))
	for i, tab := range model.Tabs {
		label := fmt.Sprintf("%d %s (%d)", i+1, tab.Label(), u.snap.TabCounts[tab])
		if tab == u.snap.ActiveTab {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	fmt.Fprint(view, strings.Join(parts, "  "))
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	view.SetOrigin(0, 0)
	view.SetCursor(0, 0)

	fmt.Fprintln(view, "a add | e edit | d delete | x complete/reopen | enter notes | 1-3/tab tabs | f status | g clear")
	fmt.Fprintln(view, "u switch user | L logout | r reload | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTaskList(view *gocui.View) {
	view.Clear()
	if u.snap.User == nil {
		fmt.Fprint(view, "No user selected. Press u to choose one.")
		return
	}
	if len(u.snap.Tasks) == 0 {
		fmt.Fprint(view, emptyListHint(u.snap.Filters))
		return
	}

	now := u.now()
	for i, task := range u.snap.Tasks {
		prefix := " "
		if i == u.selectedTask {
			prefix = ">"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatTaskSummary(task, now))
	}
	view.SetCursor(0, min(u.selectedTask, len(u.snap.Tasks)-1))
}

func emptyListHint(filters model.Filters) string {
	if filters.IsEmpty() {
		return "No tasks found. Create your first task to get started (a)."
	}
	return "No tasks found. Try adjusting your filters (f to cycle, g to clear)."
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	selected := u.selectedTaskRef()
	if selected == nil {
		fmt.Fprint(view, "No task selected")
		return
	}
	fmt.Fprint(view, strings.Join(taskCardLines(*selected, u.now()), "\n"))
}

func (u *UI) selectedTaskRef() *model.Task {
	if u.selectedTask >= 0 && u.selectedTask < len(u.snap.Tasks) {
		task := u.snap.Tasks[u.selectedTask]
		return &task
	}
	return nil
}

func (u *UI) moveDown(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selectedTask < len(u.snap.Tasks)-1 {
		u.selectedTask++
	}
	return nil
}

func (u *UI) moveUp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selectedTask > 0 {
		u.selectedTask--
	}
	return nil
}

func (u *UI) selectTab(tab model.Tab) error {
	if u.inputActive() {
		return nil
	}
	u.app.SetTab(tab)
	u.selectedTask = 0
	u.refresh()
	return nil
}

func (u *UI) nextTab(_ *gocui.Gui, _ *gocui.View) error {
	return u.selectTab(cycleTab(u.snap.ActiveTab, 1))
}

func (u *UI) prevTab(_ *gocui.Gui, _ *gocui.View) error {
	return u.selectTab(cycleTab(u.snap.ActiveTab, -1))
}

func cycleTab(current model.Tab, delta int) model.Tab {
	index := 0
	for i, tab := range model.Tabs {
		if tab == current {
			index = i
			break
		}
	}
	index = (index + delta + len(model.Tabs)) % len(model.Tabs)
	return model.Tabs[index]
}

func (u *UI) reload(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.status = ""
	u.dispatch("reload", u.app.Reload)
	return nil
}

func (u *UI) cycleStatusFilter(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.snap.User == nil {
		return nil
	}
	next := nextStatusFilter(u.snap.Filters.Get(model.FilterStatus))
	u.dispatch("filter status", func(ctx context.Context) error {
		return u.app.SetFilter(ctx, model.FilterStatus, next)
	})
	return nil
}

// nextStatusFilter cycles all -> Pending -> Completed -> all.
func nextStatusFilter(current string) string {
	switch current {
	case "":
		return model.StatusPending
	case model.StatusPending:
		return model.StatusCompleted
	default:
		return ""
	}
}

func (u *UI) clearFilters(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.snap.User == nil {
		return nil
	}
	u.dispatch("clear filters", u.app.ClearFilters)
	return nil
}

func (u *UI) logout(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.snap.User == nil {
		return nil
	}
	u.selectedTask = 0
	u.openUserPicker()
	u.dispatch("logout", u.app.Logout)
	return nil
}

func (u *UI) addTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.snap.User == nil {
		return nil
	}
	u.app.OpenCreateForm()
	u.form = newFormState(nil, u.snap.Users, u.snap.User)
	u.refresh()
	return nil
}

func (u *UI) editTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTaskRef()
	if selected == nil {
		return nil
	}
	u.app.OpenEditForm(*selected)
	u.form = newFormState(selected, u.snap.Users, u.snap.User)
	u.refresh()
	return nil
}

func (u *UI) deleteTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTaskRef()
	if selected == nil {
		return nil
	}
	task := *selected
	u.dispatch("delete task", func(ctx context.Context) error {
		return u.app.DeleteTask(ctx, task)
	})
	return nil
}

func (u *UI) toggleComplete(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTaskRef()
	if selected == nil {
		return nil
	}
	task := *selected
	u.dispatch("toggle complete", func(ctx context.Context) error {
		return u.app.ToggleComplete(ctx, task)
	})
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 6
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewForm, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	if u.form.taskID != 0 {
		view.Title = "Edit Task"
	} else {
		view.Title = "Create New Task"
	}
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	return nil
}

func (u *UI) submitFormNow(_ *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}

	draft, err := parseFormFields(u.form)
	if err != nil {
		u.status = err.Error()
		return nil
	}

	u.status = ""
	u.dispatch("submit task", func(ctx context.Context) error {
		return u.app.SubmitTask(ctx, draft)
	})
	return nil
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.app.CloseForm()
	u.form = nil
	closeView(gui, viewForm)
	return nil
}

func (u *UI) nextFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	label := u.form.fields[u.form.index].Label + ": "
	cursorX := len([]rune(label)) + len([]rune(u.form.fields[u.form.index].Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}

	if isAssigneeField(ui.form.index) {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace:
			ui.form.cycleAssignee(1)
		case gocui.KeyArrowLeft:
			ui.form.cycleAssignee(-1)
		}
		ui.renderForm(view)
		return true
	}

	field := &ui.form.fields[ui.form.index]
	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view)
	return true
}

func (u *UI) toggleHelp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() && !u.helpActive {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	closeView(gui, viewHelp)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 22
	x0 := (maxX - width) / 2
	y0 := max((maxY-height)/2, 0)
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewHelp, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	return nil
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func closeView(gui *gocui.Gui, name string) {
	if gui == nil {
		return
	}
	_ = gui.DeleteView(name)
}

func helpText() string {
	return strings.Join([]string{
		"Tasks:",
		"  j/k or arrows move selection",
		"  1 Assigned to Me | 2 Assigned by Me | 3 All Tasks | tab cycle",
		"  a add task | e edit task | d delete task | x complete/reopen",
		"  enter/n open notes",
		"",
		"Filters:",
		"  f cycle status (all/Pending/Completed) | g clear filters",
		"",
		"Form:",
		"  tab/arrows next field | space/left/right pick assignee",
		"  enter save | esc cancel",
		"",
		"Notes:",
		"  a add note | e edit note | d delete note/attachment",
		"  u upload file to note | o download attachment | esc close",
		"",
		"Other:",
		"  u switch user | L logout | r reload | ? help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool, highlight bool) {
	view.Frame = true
	view.Highlight = focused && highlight
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
