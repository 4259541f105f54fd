package tui

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
)

// promptState is a one-line text input whose value is handed to submit.
type promptState struct {
	title   string
	initial string
	submit  func(ctx context.Context, value string) error
}

// confirmState is an open yes/no question; the asking goroutine waits on
// answer.
type confirmState struct {
	prompt string
	answer chan bool
}

func (u *UI) bindDialogKeys(gui *gocui.Gui) error {
	if err := gui.SetKeybinding(viewUsers, gocui.KeyArrowDown, gocui.ModNone, u.nextUser); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewUsers, 'j', gocui.ModNone, u.nextUser); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewUsers, gocui.KeyArrowUp, gocui.ModNone, u.prevUser); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewUsers, 'k', gocui.ModNone, u.prevUser); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewUsers, gocui.KeyEnter, gocui.ModNone, u.chooseUser); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewUsers, gocui.KeyEsc, gocui.ModNone, u.closeUserPicker); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewUsers, 'r', gocui.ModNone, u.retryUsers); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewPrompt, gocui.KeyEnter, gocui.ModNone, u.submitPrompt); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewPrompt, gocui.KeyEsc, gocui.ModNone, u.cancelPrompt); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, 'y', gocui.ModNone, u.acceptConfirm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, gocui.KeyEnter, gocui.ModNone, u.acceptConfirm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, 'n', gocui.ModNone, u.rejectConfirm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, gocui.KeyEsc, gocui.ModNone, u.rejectConfirm); err != nil {
		return err
	}
	return nil
}

func (u *UI) openUserPicker() {
	u.usersActive = true
	u.selectedUser = 0
	if u.snap.User == nil {
		return
	}
	for i, user := range u.snap.Users {
		if user.ID == u.snap.User.ID {
			u.selectedUser = i
			break
		}
	}
}

func (u *UI) switchUser(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.openUserPicker()
	return nil
}

func (u *UI) nextUser(_ *gocui.Gui, _ *gocui.View) error {
	if u.selectedUser < len(u.snap.Users)-1 {
		u.selectedUser++
	}
	return nil
}

func (u *UI) prevUser(_ *gocui.Gui, _ *gocui.View) error {
	if u.selectedUser > 0 {
		u.selectedUser--
	}
	return nil
}

func (u *UI) chooseUser(gui *gocui.Gui, _ *gocui.View) error {
	if u.selectedUser < 0 || u.selectedUser >= len(u.snap.Users) {
		return nil
	}
	user := u.snap.Users[u.selectedUser]
	u.usersActive = false
	u.selectedTask = 0
	closeView(gui, viewUsers)
	u.dispatch("select user", func(ctx context.Context) error {
		return u.app.SelectUser(ctx, user)
	})
	return nil
}

func (u *UI) retryUsers(_ *gocui.Gui, _ *gocui.View) error {
	u.status = ""
	u.dispatch("fetch users", u.app.FetchUsers)
	return nil
}

func (u *UI) closeUserPicker(gui *gocui.Gui, _ *gocui.View) error {
	u.usersActive = false
	closeView(gui, viewUsers)
	return nil
}

func (u *UI) showUserPicker(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(40, maxX/3)
	height := min(max(len(u.snap.Users)+3, 5), max(maxY-2, 5))
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewUsers, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Select User"
	}
	applyViewStyle(view, true, true)
	view.Clear()
	if len(u.snap.Users) == 0 {
		fmt.Fprint(view, "No users available (r to retry)")
		return nil
	}
	for i, user := range u.snap.Users {
		prefix := " "
		if i == u.selectedUser {
			prefix = ">"
		}
		current := ""
		if u.snap.User != nil && u.snap.User.ID == user.ID {
			current = " (current)"
		}
		fmt.Fprintf(view, "%s %s @%s%s\n", prefix, user.DisplayName, user.Username, current)
	}
	view.SetCursor(0, u.selectedUser)
	return nil
}

func (u *UI) openPrompt(title, initial string, submit func(ctx context.Context, value string) error) {
	u.prompt = &promptState{title: title, initial: initial, submit: submit}
}

func (u *UI) showPrompt(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(50, maxX/2)
	height := 2
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewPrompt, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
		view.Clear()
		fmt.Fprint(view, u.prompt.initial)
		view.SetCursor(len([]rune(u.prompt.initial)), 0)
	}
	view.Title = u.prompt.title
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	return nil
}

func (u *UI) submitPrompt(gui *gocui.Gui, view *gocui.View) error {
	if u.prompt == nil || view == nil {
		return nil
	}
	return u.submitPromptValue(gui, view.Buffer())
}

func (u *UI) submitPromptValue(gui *gocui.Gui, value string) error {
	if u.prompt == nil {
		return nil
	}
	submit := u.prompt.submit
	u.prompt = nil
	closeView(gui, viewPrompt)

	value = strings.TrimSpace(value)
	u.dispatch("prompt", func(ctx context.Context) error {
		return submit(ctx, value)
	})
	return nil
}

func (u *UI) cancelPrompt(gui *gocui.Gui, _ *gocui.View) error {
	u.prompt = nil
	closeView(gui, viewPrompt)
	return nil
}

// Confirm opens the confirm dialog and blocks until it is answered. It must
// not be called from the main loop. A second request while one is pending is
// declined.
func (u *UI) Confirm(ctx context.Context, prompt string) bool {
	if !u.confirming.CompareAndSwap(false, true) {
		u.log.Debug("confirm already pending", "prompt", prompt)
		return false
	}
	if u.gui == nil {
		u.confirming.Store(false)
		return false
	}

	answer := make(chan bool, 1)
	u.gui.Update(func(*gocui.Gui) error {
		u.confirm = &confirmState{prompt: prompt, answer: answer}
		return nil
	})

	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		u.gui.Update(func(gui *gocui.Gui) error {
			if u.confirm != nil && u.confirm.answer == answer {
				u.confirm = nil
				closeView(gui, viewConfirm)
			}
			u.confirming.Store(false)
			return nil
		})
		return false
	}
}

func (u *UI) acceptConfirm(gui *gocui.Gui, _ *gocui.View) error {
	return u.answerConfirm(gui, true)
}

func (u *UI) rejectConfirm(gui *gocui.Gui, _ *gocui.View) error {
	return u.answerConfirm(gui, false)
}

func (u *UI) answerConfirm(gui *gocui.Gui, ok bool) error {
	if u.confirm == nil {
		return nil
	}
	u.confirm.answer <- ok
	u.confirm = nil
	u.confirming.Store(false)
	closeView(gui, viewConfirm)
	return nil
}

func (u *UI) showConfirm(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(50, len([]rune(u.confirm.prompt))+4)
	height := 3
	x0 := max((maxX-width)/2, 0)
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewConfirm, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Confirm"
		view.Wrap = true
	}
	view.FrameColor = gocui.ColorRed
	view.Clear()
	fmt.Fprintf(view, "%s\n[y]es / [n]o", u.confirm.prompt)
	return nil
}
