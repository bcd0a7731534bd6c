package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/nxcube/internal/storage"
)

var (
	sessionsLimit int
	sessionsLast  bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List and inspect recorded sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session and its actions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its actions",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsListCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of sessions")
	sessionsShowCmd.Flags().BoolVar(&sessionsLast, "last", false, "Show the most recent session")

	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func listSessions(db *storage.DB, limit int) ([]storage.Session, error) {
	return storage.NewSessionRepository(db).List(limit)
}

// resolveSession finds a session by ID prefix, or the latest one.
func resolveSession(db *storage.DB, args []string, last bool) (*storage.Session, error) {
	repo := storage.NewSessionRepository(db)

	var (
		s   *storage.Session
		err error
	)
	switch {
	case last:
		s, err = repo.Latest()
	case len(args) == 1:
		s, err = repo.FindByPrefix(args[0])
	default:
		return nil, errors.New("give a session ID or --last")
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func formatDuration(ms *int64) string {
	if ms == nil {
		return "open"
	}
	return (time.Duration(*ms) * time.Millisecond).Round(time.Second).String()
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := listSessions(db, sessionsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded")
		return nil
	}

	actions := storage.NewActionRepository(db)
	fmt.Fprintf(out, "%-8s  %-19s  %-5s  %-8s  %7s  %8s  %s\n", "ID", "STARTED", "SIZE", "MODE", "ACTIONS", "DURATION", "DEVICE")
	for _, s := range sessions {
		count, err := actions.Count(s.SessionID)
		if err != nil {
			return err
		}
		dev := ""
		if s.DeviceName != nil {
			dev = *s.DeviceName
		}
		fmt.Fprintf(out, "%-8s  %-19s  %-5d  %-8s  %7d  %8s  %s\n",
			s.SessionID[:8], s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Size, s.Mode, count, formatDuration(s.DurationMs), dev)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(db, args, sessionsLast)
	if err != nil {
		return err
	}
	actions, err := storage.NewActionRepository(db).ListBySession(s.SessionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Session:  %s\n", s.SessionID)
	fmt.Fprintf(out, "Started:  %s\n", s.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(s.DurationMs))
	fmt.Fprintf(out, "Puzzle:   %dx%dx%d %s\n", s.Size, s.Size, s.Size, s.Mode)
	if s.DeviceName != nil {
		fmt.Fprintf(out, "Device:   %s\n", *s.DeviceName)
	}
	fmt.Fprintln(out)
	printActions(out, actions)

	events, err := storage.NewDeviceEventRepository(db).Count(s.SessionID)
	if err == nil && events > 0 {
		fmt.Fprintf(out, "\n%d device events\n", events)
	}
	return nil
}

func printActions(out io.Writer, actions []storage.Action) {
	if len(actions) == 0 {
		fmt.Fprintln(out, "No actions")
		return
	}
	for _, a := range actions {
		detail := ""
		switch a.Kind {
		case storage.KindTurn, storage.KindShuffleTurn:
			if a.Rotation != nil {
				detail = a.Rotation.String()
			}
			if a.Face != "" {
				detail += " (" + a.Face + ")"
			}
		case storage.KindRebuild:
			detail = fmt.Sprintf("%dx%dx%d %s", a.Size, a.Size, a.Size, a.Mode)
		}
		fmt.Fprintf(out, "%4d  %8.3fs  %-12s  %s\n", a.ActionIndex, float64(a.TsMs)/1000, a.Kind, detail)
	}
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(db, args, false)
	if err != nil {
		return err
	}
	if err := storage.NewSessionRepository(db).Delete(s.SessionID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", s.SessionID)
	return nil
}
