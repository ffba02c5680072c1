package ga

import (
	"context"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/accompanist/logging"
	"golang.org/x/sync/errgroup"
)

// Initialize seeds a random population and ranks it once. Calling it again
// reseeds from scratch.
func (c *Context) Initialize() {
	c.Population = Initialize(c.rng, c.Config.PopulationSize, c.TrackLength(), c.Config.TotalKeys())
	c.score(c.Population)
	c.Population.Sort()
	c.History = []int{c.Population.Best().Fitness}
	c.state = Seeded
	c.notify(0)
}

// Run evolves the population for the configured number of generations and
// returns the champion. The context is checked between generations; when it
// is done Run returns the current champion along with the wrapped ctx error,
// and a later Run picks up where it stopped.
func (c *Context) Run(ctx context.Context) (Candidate, error) {
	switch c.state {
	case Terminated:
		return c.Population.Best(), nil
	case Unseeded:
		c.Initialize()
	}
	c.state = Evolving

	c.log.Info("Evolving accompaniment", logging.Fields{
		"generations":  c.Config.Generations,
		"population":   c.Config.PopulationSize,
		"track_length": c.TrackLength(),
		"seed":         c.Seed,
	})

	for done := len(c.History) - 1; done < c.Config.Generations; done++ {
		if err := ctx.Err(); err != nil {
			return c.Population.Best(), fault.Wrap(err,
				ftag.With(ftag.Cancelled),
				fmsg.With(fmt.Sprintf("stopped after %d of %d generations", done, c.Config.Generations)))
		}
		c.step()
		c.History = append(c.History, c.Population.Best().Fitness)
		c.notify(done + 1)
	}

	c.state = Terminated
	best := c.Population.Best()
	c.log.Info("Finished evolving", logging.Fields{"best": best.Fitness, "seeded_best": c.History[0]})
	return best, nil
}

// step runs one generation: crossover within the top half, mutation of the
// children, then rank everything and cut back to the configured size.
func (c *Context) step() {
	size := c.Config.PopulationSize
	half := size / 2
	trackLength := c.TrackLength()

	children := make(Population, half)
	for i := range children {
		a, b := c.pickParents(half)
		children[i].Track = Cross(c.Population[a].Track, c.Population[b].Track, c.rng.Intn(trackLength+1))
	}
	for i := range children {
		Mutate(c.rng, children[i].Track, c.rng.Intn(size/4+1), c.Config.TotalKeys())
	}
	c.score(children)

	grown := make(Population, 0, len(c.Population)+len(children))
	grown = append(grown, c.Population...)
	grown = append(grown, children...)
	grown.Sort()
	c.Population = Truncate(grown, size)
}

// pickParents draws two distinct indices from [0, half). With fewer than two
// candidates to choose from the only one is used twice.
func (c *Context) pickParents(half int) (int, int) {
	if half < 2 {
		return 0, 0
	}
	a := c.rng.Intn(half)
	b := c.rng.Intn(half - 1)
	if b >= a {
		b++
	}
	return a, b
}

// score is the only parallel part of a run. Each worker owns a disjoint slice
// of candidates and the evaluator is read-only.
func (c *Context) score(p Population) {
	workers := c.Config.Workers
	if workers <= 1 || len(p) < 2 {
		for i := range p {
			p[i].Fitness = c.eval.Score(p[i].Track)
		}
		return
	}

	chunk := (len(p) + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < len(p); start += chunk {
		part := p[start:min(start+chunk, len(p))]
		g.Go(func() error {
			for i := range part {
				part[i].Fitness = c.eval.Score(part[i].Track)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Context) notify(index int) {
	gen := Generation{Index: index, Best: c.Population.Best().Fitness, Size: len(c.Population)}
	if c.observer != nil {
		c.observer(gen)
	}
	if c.Config.LogEvery > 0 && index%c.Config.LogEvery == 0 {
		c.log.Debug("Generation", logging.Fields{"generation": gen.Index, "best": gen.Best})
	}
}
