package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusScan bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, journal and device status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusScan, "scan", false, "Also scan for nearby GoCubes")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	sf, err := openState()
	if err != nil {
		return err
	}
	state := sf.State()

	fmt.Fprintln(out, "nxcube status")
	fmt.Fprintln(out, "=============")
	fmt.Fprintln(out)

	if cfg.File != "" {
		fmt.Fprintf(out, "Config: %s\n", cfg.File)
	}
	fmt.Fprintf(out, "Puzzle: %dx%dx%d %s (%d steps per turn, %d shuffle turns)\n",
		cfg.Size, cfg.Size, cfg.Size, cfg.Mode, cfg.Steps, cfg.ShuffleTurns)
	fmt.Fprintf(out, "Database: %s\n", cfg.DBPath)

	db, err := openDB()
	if err != nil {
		fmt.Fprintf(out, "  (unavailable: %v)\n", err)
	} else {
		defer db.Close()
		sessions, err := listSessions(db, 1)
		if err == nil && len(sessions) > 0 {
			fmt.Fprintf(out, "Last session: %s (%s)\n",
				sessions[0].SessionID[:8], sessions[0].StartedAt.Local().Format(time.RFC3339))
		}
	}
	fmt.Fprintln(out)

	if state.ActiveSessionID != "" {
		fmt.Fprintf(out, "Unfinished session: %s\n", state.ActiveSessionID)
		fmt.Fprintln(out, "  (Use 'nxcube play' to continue it)")
	} else {
		fmt.Fprintln(out, "No unfinished session")
	}
	fmt.Fprintln(out)

	if state.LastDeviceID != "" {
		fmt.Fprintf(out, "Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceID)
	} else {
		fmt.Fprintln(out, "No device history")
	}

	if !statusScan {
		return nil
	}
	fmt.Fprintln(out)
	_, results, err := scanForCube(out, 5*time.Second)
	if err != nil {
		fmt.Fprintf(out, "Scan failed: %v\n", err)
		return nil
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No GoCube in range")
		return nil
	}
	for _, r := range results {
		marker := " "
		if r.ID == state.LastDeviceID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (ID: %s, RSSI: %d)\n", marker, r.Name, r.ID, r.RSSI)
	}
	return nil
}
