package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/lazytracker/internal/app"
	"github.com/Joseda-hg/lazytracker/internal/format"
	"github.com/Joseda-hg/lazytracker/internal/model"
)

func usersCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the users tasks can be assigned to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			a := rt.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := a.Start(cmd.Context()); err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), a.Snapshot())
			return nil
		},
	}
}

func loginCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Select the current user by username or display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			a := rt.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := a.FetchUsers(cmd.Context()); err != nil {
				return err
			}
			return a.SelectUserByName(cmd.Context(), args[0])
		},
	}
}

func logoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			return rt.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr()).Logout(cmd.Context())
		},
	}
}

func whoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.session.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (@%s, id %d)\n", user.DisplayName, user.Username, user.ID)
			return nil
		},
	}
}

func tasksCmd(flags *globalFlags) *cobra.Command {
	var tab string
	var status string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print one of the task lists for the saved user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, ok := model.ParseTab(tab)
			if !ok {
				return fmt.Errorf("unknown tab %q (want one of %s)", tab, tabNames())
			}
			if status != "" && status != model.StatusPending && status != model.StatusCompleted {
				return fmt.Errorf("unknown status %q (want %s or %s)", status, model.StatusPending, model.StatusCompleted)
			}

			rt, err := setup(*flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			a := rt.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			// Filters set before Start ride along with the single reload it does.
			if err := a.SetFilter(cmd.Context(), model.FilterStatus, status); err != nil {
				return err
			}
			if err := a.Start(cmd.Context()); err != nil {
				return err
			}
			if a.CurrentUser() == nil {
				return fmt.Errorf("%w: run `lazytracker login <username>` first", app.ErrNotLoggedIn)
			}
			a.SetTab(selected)

			printTasks(cmd.OutOrStdout(), a.Snapshot(), time.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", string(model.TabAssignedToMe), "list to show ("+tabNames()+")")
	cmd.Flags().StringVarP(&status, "status", "s", "", "only show Pending or Completed tasks")

	return cmd
}

func tabNames() string {
	names := make([]string, 0, len(model.Tabs))
	for _, tab := range model.Tabs {
		names = append(names, string(tab))
	}
	return strings.Join(names, ", ")
}

func printUsers(w io.Writer, snap app.Snapshot) {
	for _, user := range snap.Users {
		marker := " "
		if snap.User != nil && snap.User.ID == user.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-4d %-16s %s\n", marker, user.ID, user.Username, user.DisplayName)
	}
}

func printTasks(w io.Writer, snap app.Snapshot, now time.Time) {
	fmt.Fprintf(w, "%s (%d)\n", snap.ActiveTab.Label(), len(snap.Tasks))
	for _, task := range snap.Tasks {
		mark := " "
		if task.IsCompleted() {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] #%-4d %-40s %-12s %s\n",
			mark,
			task.ID,
			format.Truncate(format.SingleLine(task.Title), 40),
			task.AssignedUser.DisplayName,
			format.RelativeDate(task.CreatedAt.Time, now),
		)
	}
	fmt.Fprintf(w, "Total %d | Pending %d | Completed %d\n", snap.Stats.Total, snap.Stats.Pending, snap.Stats.Completed)
}
