package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/nxcube/internal/device"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GoCube smart cubes",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "How long to scan")
	rootCmd.AddCommand(scanCmd)
}

// scanForCube runs one scan with the shared timeout. The client is returned
// even when nothing was found so the caller can retry or connect.
func scanForCube(out io.Writer, timeout time.Duration) (*device.Client, []device.ScanResult, error) {
	fmt.Fprintln(out, "Scanning for GoCube devices...")

	client, err := device.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return client, nil, err
	}
	return client, results, nil
}

// pickDevice prefers the last connected cube when it is in range.
func pickDevice(results []device.ScanResult, lastID string) device.ScanResult {
	for _, r := range results {
		if lastID != "" && r.ID == lastID {
			return r
		}
	}
	return results[0]
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	_, results, err := scanForCube(out, scanTimeout)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No GoCube devices found")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tips:")
		fmt.Fprintln(out, "  - Ensure your GoCube is powered on")
		fmt.Fprintln(out, "  - Move the cube to wake it up")
		fmt.Fprintln(out, "  - Check that Bluetooth is enabled")
		return nil
	}

	fmt.Fprintf(out, "Found %d device(s):\n", len(results))
	for _, r := range results {
		fmt.Fprintf(out, "  - %s (ID: %s, RSSI: %d)\n", r.Name, r.ID, r.RSSI)
	}
	return nil
}
