package quantum

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Game.
type Option func(*Game)

// WithRand sets the measurement random source.
func WithRand(src RandSource) Option {
	return func(g *Game) {
		if src != nil {
			g.rng = src
		}
	}
}

// WithSeed seeds a private math/rand generator. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithOracle replaces the classical rules oracle.
func WithOracle(o Oracle) Option {
	return func(g *Game) {
		if o != nil {
			g.oracle = o
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.log = logger
	}
}

// WithID overrides the generated game id.
func WithID(id string) Option {
	return func(g *Game) {
		if id != "" {
			g.id = id
		}
	}
}

// WithEpsilon sets the tolerance on branch weight sums.
func WithEpsilon(eps float64) Option {
	return func(g *Game) {
		if eps > 0 {
			g.epsilon = eps
		}
	}
}
