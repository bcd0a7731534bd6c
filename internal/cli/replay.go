package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/nxcube/internal/recorder"
	"github.com/SeamusWaldron/nxcube/internal/render"
	"github.com/SeamusWaldron/nxcube/internal/storage"
)

var (
	replayLast   bool
	replayUntil  int
	replayScheme string
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Rebuild the puzzle a session ended in",
	Long: `Replay the journaled actions of a session without animation and print
the resulting face net. Use --until to stop after the first N actions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent session")
	replayCmd.Flags().IntVar(&replayUntil, "until", -1, "Replay only the first N actions")
	replayCmd.Flags().StringVar(&replayScheme, "scheme", "color", "Sticker scheme: color, letters or mono")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scheme, err := render.ParseScheme(replayScheme)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(db, args, replayLast)
	if err != nil {
		return err
	}
	actions, err := storage.NewActionRepository(db).ListBySession(s.SessionID)
	if err != nil {
		return err
	}

	limit := len(actions)
	if replayUntil >= 0 && replayUntil < limit {
		limit = replayUntil
	}
	p, err := recorder.ReplayUntil(s, actions, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Session %s: %d of %d actions, %dx%dx%d %s\n\n",
		s.SessionID[:8], limit, len(actions), p.Size(), p.Size(), p.Size(), p.Mode())
	fmt.Fprint(out, render.Net(p, scheme))
	if p.IsSolved() {
		fmt.Fprintln(out, "\nSolved")
	} else {
		fmt.Fprintln(out, "\nNot solved")
	}
	return nil
}
