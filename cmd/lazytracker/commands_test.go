package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/lazytracker/internal/apitest"
	"github.com/Joseda-hg/lazytracker/internal/app"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

// run executes the CLI against the fake service with an isolated config dir.
func run(t *testing.T, baseURL, dir string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "config.json"),
		"--api-url", baseURL,
	}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	_, baseURL := apitest.Start(t)
	dir := t.TempDir()
	alice := apitest.DefaultUsers[0]

	out, _, err := run(t, baseURL, dir, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)

	out, _, err = run(t, baseURL, dir, "login", alice.Username)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, "+alice.DisplayName+"!")

	out, _, err = run(t, baseURL, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, alice.DisplayName)

	out, _, err = run(t, baseURL, dir, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "* ")
	assert.Contains(t, out, alice.Username)

	_, _, err = run(t, baseURL, dir, "logout")
	require.NoError(t, err)

	out, _, err = run(t, baseURL, dir, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)

	assert.FileExists(t, filepath.Join(dir, "config.json"))
}

func TestLoginUnknownUser(t *testing.T) {
	_, baseURL := apitest.Start(t)

	_, errOut, err := run(t, baseURL, t.TempDir(), "login", "nobody")
	require.ErrorIs(t, err, app.ErrUnknownUser)
	assert.Contains(t, errOut, `Unknown user "nobody"`)
}

func TestTasksRequiresLogin(t *testing.T) {
	_, baseURL := apitest.Start(t)

	_, _, err := run(t, baseURL, t.TempDir(), "tasks")
	require.ErrorIs(t, err, app.ErrNotLoggedIn)
}

func TestTasksPrintsSelectedTab(t *testing.T) {
	server, baseURL := apitest.Start(t)
	dir := t.TempDir()
	alice := apitest.DefaultUsers[0]
	bob := apitest.DefaultUsers[1]
	aliceID := alice.ID

	server.SeedTask(model.TaskInput{Title: "Review PR", Description: "d", AssignedTo: alice.ID})
	server.SeedTask(model.TaskInput{Title: "Fix build", Description: "d", AssignedTo: bob.ID, AssignedBy: &aliceID})

	_, _, err := run(t, baseURL, dir, "login", alice.Username)
	require.NoError(t, err)

	out, _, err := run(t, baseURL, dir, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned to Me (1)")
	assert.Contains(t, out, "Review PR")
	assert.NotContains(t, out, "Fix build")

	out, _, err = run(t, baseURL, dir, "tasks", "--tab", string(model.TabAssignedByMe))
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned by Me (1)")
	assert.Contains(t, out, "Fix build")
}

func TestTasksRejectsBadFlags(t *testing.T) {
	_, baseURL := apitest.Start(t)
	dir := t.TempDir()

	_, _, err := run(t, baseURL, dir, "tasks", "--tab", "someone_else")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tab")

	_, _, err = run(t, baseURL, dir, "tasks", "--status", "Done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}
