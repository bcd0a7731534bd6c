package nxcube

import (
	"math"
	"slices"
)

// DefaultSteps is the number of 10 degree increments in an animated turn.
const DefaultSteps = 9

// Phase is the state of the animation controller.
type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// AnimationState is a plain snapshot of the animation controller. It holds
// no pointers into the puzzle.
type AnimationState struct {
	Phase    Phase    `json:"phase"`
	Step     int      `json:"step"`
	Steps    int      `json:"steps"`
	Rotation Rotation `json:"rotation"`
	IDs      []int    `json:"ids,omitempty"`
}

// Animator spreads a quarter turn over several frames. Each Step applies one
// visual increment to the active slice; the step after the last increment
// commits the grid permutation and returns to Idle.
type Animator struct {
	puzzle *Puzzle
	state  AnimationState
}

// NewAnimator returns an idle animator for p. steps below one are treated
// as one.
func NewAnimator(p *Puzzle, steps int) *Animator {
	if steps < 1 {
		steps = 1
	}
	return &Animator{
		puzzle: p,
		state:  AnimationState{Phase: Idle, Steps: steps},
	}
}

// Busy reports whether a turn is in flight.
func (a *Animator) Busy() bool {
	return a.state.Phase == Animating
}

// State returns a copy of the current state.
func (a *Animator) State() AnimationState {
	s := a.state
	s.IDs = slices.Clone(a.state.IDs)
	return s
}

// Progress returns how far the current turn has rotated, from 0 to 1.
func (a *Animator) Progress() float64 {
	if a.state.Phase != Animating {
		return 0
	}
	return float64(a.state.Step) / float64(a.state.Steps)
}

// Start begins animating r. The slice membership captured here is the set
// that is animated and later permuted.
func (a *Animator) Start(r Rotation) error {
	if a.Busy() || a.puzzle.animator != nil {
		return ErrAnimating
	}
	if err := r.validate(a.puzzle.n); err != nil {
		return err
	}
	a.puzzle.animator = a
	a.state = AnimationState{
		Phase:    Animating,
		Steps:    a.state.Steps,
		Rotation: r,
		IDs:      a.puzzle.slices.Layer(r.Axis, r.Layer).IDs(),
	}
	return nil
}

// Step advances one frame. It returns true on the frame the turn commits.
func (a *Animator) Step() bool {
	if a.state.Phase != Animating {
		return false
	}

	if a.state.Step < a.state.Steps {
		r := a.state.Rotation
		inc := turnMatrix(r.Axis, r.Direction, math.Pi/2/float64(a.state.Steps))
		for _, id := range a.state.IDs {
			c := a.puzzle.cubies[id]
			c.Orientation = inc.Mul4(c.Orientation)
		}
		a.state.Step++
		return false
	}

	a.puzzle.commit(a.state.Rotation, a.state.IDs)
	a.reset()
	return true
}

// Finish runs the current turn to completion. It returns true if a turn was
// committed.
func (a *Animator) Finish() bool {
	for a.Busy() {
		if a.Step() {
			return true
		}
	}
	return false
}

// Abort drops the current turn without committing it. Orientations of the
// affected cubies are returned to their settled values.
func (a *Animator) Abort() {
	if !a.Busy() {
		return
	}
	for _, id := range a.state.IDs {
		if id < len(a.puzzle.cubies) {
			c := a.puzzle.cubies[id]
			c.Orientation = c.rest
		}
	}
	a.reset()
}

func (a *Animator) reset() {
	if a.puzzle.animator == a {
		a.puzzle.animator = nil
	}
	a.state = AnimationState{Phase: Idle, Steps: a.state.Steps}
}
