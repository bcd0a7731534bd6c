package cli

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/nxcube"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the puzzle model's invariants for a build",
	Long: `Run the model's self-checks for the configured size and mode: build
counts, quarter-turn cycles, inverses, shuffle and reset, animation timing
and the variant classifier.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Int("turns", 50, "Random turns used by the shuffle check")
	verifyCmd.Flags().Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	rootCmd.AddCommand(verifyCmd)
}

type checkResult struct {
	Name string
	Err  error
}

type snapshot map[int]struct {
	grid nxcube.Coord
	rest mgl64.Mat4
}

func takeSnapshot(p *nxcube.Puzzle) snapshot {
	s := snapshot{}
	for _, c := range p.Cubies() {
		s[c.ID] = struct {
			grid nxcube.Coord
			rest mgl64.Mat4
		}{c.Grid, c.Settled()}
	}
	return s
}

func sameSnapshot(a, b snapshot) error {
	for id, want := range a {
		got, ok := b[id]
		if !ok {
			return fmt.Errorf("cubie %d missing", id)
		}
		if got != want {
			return fmt.Errorf("cubie %d at %s, want %s", id, got.grid, want.grid)
		}
	}
	return nil
}

func allRotations(n int) []nxcube.Rotation {
	var out []nxcube.Rotation
	for _, a := range []nxcube.Axis{nxcube.AxisX, nxcube.AxisY, nxcube.AxisZ} {
		for l := 0; l < n; l++ {
			for _, d := range []nxcube.Direction{nxcube.Negative, nxcube.Positive} {
				out = append(out, nxcube.Rotation{Axis: a, Layer: l, Direction: d})
			}
		}
	}
	return out
}

// runChecks exercises a fresh build of size n in mode m.
func runChecks(n int, m nxcube.Mode, steps, turns int, seed uint64) []checkResult {
	opts := []nxcube.Option{nxcube.WithMode(m), nxcube.WithSteps(steps), nxcube.WithShuffleTurns(turns)}
	if seed != 0 {
		opts = append(opts, nxcube.WithSeed(seed))
	}

	fresh := func() (*nxcube.Puzzle, error) { return nxcube.New(n, opts...) }

	checks := []struct {
		name string
		fn   func() error
	}{
		{"build", func() error {
			p, err := fresh()
			if err != nil {
				return err
			}
			if p.Len() != nxcube.CubieCount(n, m) {
				return fmt.Errorf("%d cubies, want %d", p.Len(), nxcube.CubieCount(n, m))
			}
			return p.CheckInvariants()
		}},
		{"quarter turn cycle", func() error {
			p, err := fresh()
			if err != nil {
				return err
			}
			start := takeSnapshot(p)
			for _, r := range allRotations(n) {
				for i := 0; i < 4; i++ {
					if err := p.Apply(r); err != nil {
						return err
					}
				}
				if err := sameSnapshot(start, takeSnapshot(p)); err != nil {
					return fmt.Errorf("%s x4: %w", r, err)
				}
			}
			return nil
		}},
		{"inverse", func() error {
			p, err := fresh()
			if err != nil {
				return err
			}
			start := takeSnapshot(p)
			for _, r := range allRotations(n) {
				if err := p.Apply(r); err != nil {
					return err
				}
				if err := p.Apply(r.Inverse()); err != nil {
					return err
				}
				if err := sameSnapshot(start, takeSnapshot(p)); err != nil {
					return fmt.Errorf("%s then inverse: %w", r, err)
				}
			}
			return nil
		}},
		{"shuffle and reset", func() error {
			p, err := fresh()
			if err != nil {
				return err
			}
			start := takeSnapshot(p)
			if got := p.Shuffle(turns); len(got) != turns {
				return fmt.Errorf("shuffle applied %d turns, want %d", len(got), turns)
			}
			if err := p.CheckInvariants(); err != nil {
				return err
			}
			p.Reset()
			if !p.IsSolved() {
				return errors.New("not solved after reset")
			}
			return sameSnapshot(start, takeSnapshot(p))
		}},
		{"animation timing", func() error {
			c, err := nxcube.NewController(n, opts...)
			if err != nil {
				return err
			}
			if !c.Press('R') {
				return errors.New("R was not accepted")
			}
			for i := 1; i <= steps; i++ {
				if c.Tick() {
					return fmt.Errorf("committed after %d ticks, want %d", i, steps+1)
				}
			}
			if !c.Tick() {
				return fmt.Errorf("not committed after %d ticks", steps+1)
			}
			if c.Busy() {
				return errors.New("still busy after commit")
			}
			return nil
		}},
		{"classifier", func() error {
			p, err := fresh()
			if err != nil {
				return err
			}
			for _, c := range p.Cubies() {
				if want := nxcube.VisualIndex(c.Home(), n); c.VisualIndex != want {
					return fmt.Errorf("cubie %d visual index %d, want %d", c.ID, c.VisualIndex, want)
				}
				if c.Type == nxcube.Trivial {
					continue
				}
				if t := nxcube.TemplateFor(c, m); t.Category != c.Type {
					return fmt.Errorf("cubie %d is a %s drawn as %s", c.ID, c.Type, t.Category)
				}
			}
			return nil
		}},
	}

	results := make([]checkResult, len(checks))
	for i, ch := range checks {
		results[i] = checkResult{Name: ch.name, Err: ch.fn()}
	}
	return results
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	turns, _ := cmd.Flags().GetInt("turns")
	seed, _ := cmd.Flags().GetUint64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = cfg.Seed
	}

	fmt.Fprintf(out, "Verifying %dx%dx%d %s\n", cfg.Size, cfg.Size, cfg.Size, cfg.Mode)
	failed := 0
	for _, r := range runChecks(cfg.Size, cfg.Mode, cfg.Steps, turns, seed) {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "  FAIL  %s: %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(out, "  ok    %s\n", r.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}
