package nxcube

// Cause records where a turn came from.
type Cause int

const (
	CauseKey Cause = iota
	CauseDevice
	CauseShuffle
)

func (c Cause) String() string {
	switch c {
	case CauseKey:
		return "key"
	case CauseDevice:
		return "device"
	case CauseShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Trigger is a request to turn a slice.
type Trigger struct {
	Rotation Rotation
	Key      rune // Face letter, zero when not from a key
	Cause    Cause
}

// TurnEvent is reported once a turn has committed.
type TurnEvent struct {
	Trigger
	Index int // Zero-based count of committed turns since the last reset or rebuild
}

// Controller drives a Puzzle one frame at a time. It owns the animation
// state machine and a single pending trigger slot.
type Controller struct {
	puzzle  *Puzzle
	anim    *Animator
	cfg     *config
	pending *Trigger
	active  Trigger
	turns   int

	onTurn    func(TurnEvent)
	onShuffle func([]Rotation)
	onReset   func()
	onRebuild func(n int, m Mode)
}

// NewController builds a solved puzzle of size n and wraps it.
func NewController(n int, opts ...Option) (*Controller, error) {
	p, err := New(n, opts...)
	if err != nil {
		return nil, err
	}
	return &Controller{
		puzzle: p,
		anim:   NewAnimator(p, p.cfg.steps),
		cfg:    p.cfg,
	}, nil
}

// SetTurnCallback sets the callback fired when a turn commits.
func (c *Controller) SetTurnCallback(cb func(TurnEvent)) {
	c.onTurn = cb
}

// SetShuffleCallback sets the callback fired after a shuffle with the
// turns it applied. Shuffle turns are not reported to the turn callback.
func (c *Controller) SetShuffleCallback(cb func([]Rotation)) {
	c.onShuffle = cb
}

// SetResetCallback sets the callback fired after Reset.
func (c *Controller) SetResetCallback(cb func()) {
	c.onReset = cb
}

// SetRebuildCallback sets the callback fired after the size or mode changes.
func (c *Controller) SetRebuildCallback(cb func(n int, m Mode)) {
	c.onRebuild = cb
}

// Puzzle returns the underlying puzzle for inspection. While a turn is
// animating the puzzle rejects Apply and Shuffle with ErrAnimating, and
// Reset or Rebuild on it abort the turn.
func (c *Controller) Puzzle() *Puzzle {
	return c.puzzle
}

// Animation returns a snapshot of the animation state.
func (c *Controller) Animation() AnimationState {
	return c.anim.State()
}

// Progress returns how far the current turn has rotated, from 0 to 1.
func (c *Controller) Progress() float64 {
	return c.anim.Progress()
}

// Busy reports whether a turn is animating or waiting to start.
func (c *Controller) Busy() bool {
	return c.anim.Busy() || c.pending != nil
}

// Turns returns the number of committed turns since the last reset or rebuild.
func (c *Controller) Turns() int {
	return c.turns
}

// Request queues t to start on the next Tick. It returns ErrAnimating when
// a turn is already animating or queued; the trigger is dropped.
func (c *Controller) Request(t Trigger) error {
	if err := t.Rotation.validate(c.puzzle.n); err != nil {
		return err
	}
	if c.Busy() {
		return ErrAnimating
	}
	c.pending = &t
	return nil
}

// Press queues the turn bound to a face letter. It reports whether the key
// was accepted.
func (c *Controller) Press(key rune) bool {
	r, ok := KeyRotation(key, c.puzzle.n, c.puzzle.mode)
	if !ok {
		return false
	}
	return c.Request(Trigger{Rotation: r, Key: key, Cause: CauseKey}) == nil
}

// Follow mirrors a turn made on a physical cube. Any turn in flight is
// completed first so device turns are never dropped.
func (c *Controller) Follow(f Face, clockwise bool) error {
	c.Flush()
	r := FaceRotation(f, c.puzzle.n, clockwise)
	return c.Request(Trigger{Rotation: r, Key: rune(f.String()[0]), Cause: CauseDevice})
}

// Tick advances one frame: a pending trigger is started, then the running
// animation moves one step. It returns true if a turn committed.
func (c *Controller) Tick() bool {
	if c.pending != nil {
		t := *c.pending
		c.pending = nil
		if err := c.anim.Start(t.Rotation); err == nil {
			c.active = t
		}
	}

	if !c.anim.Busy() {
		return false
	}
	if c.anim.Step() {
		c.committed()
		return true
	}
	return false
}

// Flush completes the running turn and any pending trigger immediately.
func (c *Controller) Flush() {
	if c.anim.Finish() {
		c.committed()
	}
	if c.pending != nil {
		c.Tick()
		if c.anim.Finish() {
			c.committed()
		}
	}
}

func (c *Controller) committed() {
	ev := TurnEvent{Trigger: c.active, Index: c.turns}
	c.turns++
	c.active = Trigger{}
	if c.onTurn != nil {
		c.onTurn(ev)
	}
}

// Shuffle applies the configured number of random turns.
func (c *Controller) Shuffle() ([]Rotation, error) {
	return c.ShuffleN(c.cfg.shuffleTurns)
}

// ShuffleN applies k random turns instantaneously. It fails with
// ErrAnimating while a turn is in flight.
func (c *Controller) ShuffleN(k int) ([]Rotation, error) {
	if c.Busy() {
		return nil, ErrAnimating
	}
	turns := c.puzzle.Shuffle(k)
	c.turns += len(turns)
	if c.onShuffle != nil {
		c.onShuffle(turns)
	}
	return turns, nil
}

// Reset aborts any animation and returns the puzzle to solved.
func (c *Controller) Reset() {
	c.abort()
	c.puzzle.Reset()
	c.turns = 0
	if c.onReset != nil {
		c.onReset()
	}
}

// CycleMode rebuilds the puzzle in the next mode of the cycle.
func (c *Controller) CycleMode() error {
	return c.Rebuild(c.puzzle.n, c.puzzle.mode.Next())
}

// Resize rebuilds the puzzle at size n, keeping the mode.
func (c *Controller) Resize(n int) error {
	return c.Rebuild(n, c.puzzle.mode)
}

// Rebuild aborts any animation and builds a solved puzzle of size n in
// mode m. Invalid arguments leave everything as it was.
func (c *Controller) Rebuild(n int, m Mode) error {
	if err := validateBuild(n, m); err != nil {
		return err
	}
	c.abort()
	if err := c.puzzle.Rebuild(n, m); err != nil {
		return err
	}
	c.turns = 0
	if c.onRebuild != nil {
		c.onRebuild(n, m)
	}
	return nil
}

func (c *Controller) abort() {
	c.anim.Abort()
	c.pending = nil
	c.active = Trigger{}
}
