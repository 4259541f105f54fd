package app

import "github.com/Joseda-hg/lazytracker/internal/model"

// Snapshot is a consistent copy of the state plus everything derived from it.
type Snapshot struct {
	User      *model.User
	Users     []model.User
	Views     model.TaskViews
	ActiveTab model.Tab
	Filters   model.Filters
	Loading   bool
	Form      FormState
	Notes     NotesState
	Last      *Notification

	// Tasks is the list for ActiveTab.
	Tasks     []model.Task
	Stats     model.Stats
	TabCounts map[model.Tab]int
}

func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := Snapshot{
		User:      a.session.User(),
		Users:     append([]model.User(nil), a.users...),
		Views:     a.views,
		ActiveTab: a.activeTab,
		Filters:   a.filters.Clone(),
		Loading:   a.loading,
		Form:      a.form,
		Notes:     a.notes,
		TabCounts: make(map[model.Tab]int, len(model.Tabs)),
	}
	if a.last != nil {
		last := *a.last
		snap.Last = &last
	}

	snap.Tasks = a.views.List(a.activeTab)
	snap.Stats = model.ComputeStats(snap.Tasks)
	for _, tab := range model.Tabs {
		snap.TabCounts[tab] = len(a.views.List(tab))
	}
	return snap
}

func (a *App) CurrentUser() *model.User {
	return a.session.User()
}

// UserName returns the display name for userID, or "" when unknown.
func (s Snapshot) UserName(userID int64) string {
	for _, user := range s.Users {
		if user.ID == userID {
			return user.DisplayName
		}
	}
	return ""
}
