package nxcube

import (
	"math/rand/v2"
	"time"
)

// Option configures Puzzle and Controller behavior.
type Option func(*config)

type config struct {
	mode         Mode
	steps        int
	shuffleTurns int
	rng          *rand.Rand
}

func defaultConfig() *config {
	seed := uint64(time.Now().UnixNano())
	return &config{
		mode:         Standard,
		steps:        DefaultSteps,
		shuffleTurns: DefaultShuffleTurns,
		rng:          rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// WithMode sets the variant the puzzle is built in.
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithSteps sets how many frames a quarter turn is spread over before it
// commits. Values below one are ignored.
func WithSteps(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.steps = n
		}
	}
}

// WithShuffleTurns sets the turn count used by Controller.Shuffle.
func WithShuffleTurns(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.shuffleTurns = n
		}
	}
}

// WithSeed makes shuffles reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
}

// WithRand supplies the random source used for shuffles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = r
		}
	}
}
