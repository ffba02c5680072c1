package ga

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/accompanist/consonance"
	"github.com/jsphweid/accompanist/logging"
	"github.com/jsphweid/accompanist/model"
)

type State int

const (
	Unseeded State = iota
	Seeded
	Evolving
	Terminated
)

func (s State) String() string {
	switch s {
	case Unseeded:
		return "unseeded"
	case Seeded:
		return "seeded"
	case Evolving:
		return "evolving"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Generation describes the population at a generation boundary.
// Index 0 is the freshly seeded population.
type Generation struct {
	Index int
	Best  int
	Size  int
}

type Option func(*Context)

func WithLogger(l logging.Logger) Option {
	return func(c *Context) {
		c.log = l
	}
}

func WithObserver(f func(Generation)) Option {
	return func(c *Context) {
		c.observer = f
	}
}

func WithRunID(id string) Option {
	return func(c *Context) {
		c.RunID = id
	}
}

// Context owns everything one run needs. Consonant and Digest never change
// after construction; Population is replaced every generation.
type Context struct {
	RunID  string
	Config Config
	Seed   int64

	Key        uint8
	Consonant  consonance.Set
	Digest     model.MelodyDigest
	Population Population

	// champion fitness per generation, History[0] being the seeded population
	History []int

	state    State
	rng      *rand.Rand
	eval     *Evaluator
	log      logging.Logger
	observer func(Generation)
}

// NewContext validates every precondition of a run. key is the
// major-equivalent pitch class of the melody.
func NewContext(cfg Config, key uint8, digest model.MelodyDigest, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(digest) == 0 {
		return nil, invalid(ErrEmptyDigest, "no beats to accompany")
	}
	if key > 11 {
		return nil, invalid(ErrInvalidKey, fmt.Sprintf("key %d", key))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	set := consonance.Build(key)

	c := &Context{
		RunID:     uuid.New().String(),
		Config:    cfg,
		Seed:      seed,
		Key:       key,
		Consonant: set,
		Digest:    digest,
		rng:       rand.New(rand.NewSource(seed)),
		eval:      NewEvaluator(set, digest),
		log:       &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithFields(logging.Fields{"run_id": c.RunID})
	return c, nil
}

func (c *Context) State() State {
	return c.state
}

func (c *Context) TrackLength() int {
	return len(c.Digest)
}

func (c *Context) Fitness(track model.Track) int {
	return c.eval.Score(track)
}
