package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/nxcube"
)

var inspectTemplates bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the cubies, slices and templates of a build",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectTemplates, "templates", false, "Also list the template catalogue")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	p, err := nxcube.New(cfg.Size, cfg.Options()...)
	if err != nil {
		return err
	}
	n := p.Size()

	counts := map[nxcube.CubieType]int{}
	for _, c := range p.Cubies() {
		counts[c.Type]++
	}
	fmt.Fprintf(out, "%dx%dx%d %s: %d cubies", n, n, n, p.Mode(), p.Len())
	for _, t := range []nxcube.CubieType{nxcube.Corner, nxcube.Edge, nxcube.Center, nxcube.Trivial} {
		if counts[t] > 0 {
			fmt.Fprintf(out, ", %d %s", counts[t], t)
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%4s  %-8s  %-16s  %-10s  %6s  %s\n", "ID", "TYPE", "POSITION", "GRID", "VISUAL", "PICK")
	for _, c := range p.Cubies() {
		pos := fmt.Sprintf("(%g,%g,%g)", c.Position[0], c.Position[1], c.Position[2])
		pick := c.PickColor()
		fmt.Fprintf(out, "%4d  %-8s  %-16s  %-10s  %6d  #%02x%02x%02x\n",
			c.ID, c.Type, pos, c.Grid, c.VisualIndex, pick[0], pick[1], pick[2])
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Slices:")
	for _, axis := range []nxcube.Axis{nxcube.AxisX, nxcube.AxisY, nxcube.AxisZ} {
		fmt.Fprintf(out, "  %s:", axis)
		for _, s := range p.Slices().Family(axis) {
			fmt.Fprintf(out, " %d", s.Len())
		}
		fmt.Fprintln(out)
	}

	if inspectTemplates {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Templates:")
		for _, t := range nxcube.Templates(p.Mode()) {
			paint := ""
			for _, c := range t.Paint {
				paint += c.String()
			}
			fmt.Fprintf(out, "  %2d  %-7s  %s  min=%v max=%v\n", t.Index, t.Category, paint, t.Min, t.Max)
		}
	}
	return nil
}
