// Package roundtrip generates loop routes and ranks them by tailwind.
package roundtrip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/tailwind"
)

// ErrNoCandidates is returned when no candidate loop could be generated.
var ErrNoCandidates = errors.New("no round trip candidates could be generated")

const maxSeed = 100000

type LoopRouter interface {
	RoundTrip(ctx context.Context, center geo.Point, lengthMeters float64, seed int) (geo.Route, error)
}

type TailwindScorer interface {
	Score(ctx context.Context, route geo.Route, start time.Time, avgSpeedKmh float64, policy tailwind.Policy) (float64, error)
}

type Request struct {
	Center      geo.Point
	LengthKm    float64
	Start       time.Time
	AvgSpeedKmh float64
	Candidates  int
}

// Candidate is one generated loop. Score is -Inf when it could not be scored.
type Candidate struct {
	Route      geo.Route `json:"route"`
	Seed       int       `json:"seed"`
	DistanceKm float64   `json:"distanceKm"`
	Score      float64   `json:"-"`

	order int
}

type Generator struct {
	router LoopRouter
	scorer TailwindScorer
	policy tailwind.Policy
	cfg    config.RoundTripConfig
	seed   func() int
	logger *slog.Logger
}

func NewGenerator(router LoopRouter, scorer TailwindScorer, cfg *config.Config, logger *slog.Logger) *Generator {
	return &Generator{
		router: router,
		scorer: scorer,
		policy: tailwind.Planned(cfg.Tailwind),
		cfg:    cfg.RoundTrip,
		seed:   func() int { return rand.IntN(maxSeed) },
		logger: logger.With("component", "roundtrip-generator"),
	}
}

// Rank generates the requested number of loops concurrently, scores them one
// after the other and returns them best first. Zero LengthKm and Candidates
// fall back to the configured defaults.
func (g *Generator) Rank(ctx context.Context, req Request) ([]Candidate, error) {
	lengthKm := req.LengthKm
	if lengthKm == 0 {
		lengthKm = g.cfg.LengthKm
	}
	n := req.Candidates
	if n == 0 {
		n = g.cfg.Candidates
	}
	if lengthKm < 0 || math.IsNaN(lengthKm) {
		return nil, fmt.Errorf("round trip length must be positive, got %v", lengthKm)
	}
	if n < 0 {
		return nil, fmt.Errorf("candidate count must be positive, got %d", n)
	}

	candidates := g.generate(ctx, req.Center, lengthKm*1000, n)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w near (%f, %f) for %v km", ErrNoCandidates, req.Center.Lat, req.Center.Lng, lengthKm)
	}

	// Sequential scoring keeps the number of concurrent weather requests bounded
	// by a single scorer's stagger.
	for i := range candidates {
		score, err := g.scorer.Score(ctx, candidates[i].Route, req.Start, req.AvgSpeedKmh, g.policy)
		if err != nil {
			g.logger.Warn("failed to score candidate", "seed", candidates[i].Seed, "error", err)
			score = math.Inf(-1)
		}
		candidates[i].Score = score
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	g.logger.Info("ranked round trip candidates",
		"candidates", len(candidates),
		"best_seed", candidates[0].Seed,
		"best_score", candidates[0].Score,
	)
	return candidates, nil
}

// Best returns the highest ranked candidate.
func (g *Generator) Best(ctx context.Context, req Request) (*Candidate, error) {
	ranked, err := g.Rank(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ranked[0], nil
}

func (g *Generator) generate(ctx context.Context, center geo.Point, lengthMeters float64, n int) []Candidate {
	seeds := make([]int, n)
	for i := range seeds {
		seeds[i] = g.seed()
	}

	p := pool.NewWithResults[*Candidate]().WithContext(ctx)
	for i, seed := range seeds {
		p.Go(func(ctx context.Context) (*Candidate, error) {
			route, err := g.router.RoundTrip(ctx, center, lengthMeters, seed)
			if err != nil {
				g.logger.Warn("candidate generation failed", "candidate", i+1, "seed", seed, "error", err)
				return nil, nil
			}

			distance := route.TotalDistance()
			if math.Abs(distance-lengthMeters)/lengthMeters > 0.5 {
				g.logger.Warn("candidate distance differs more than 50% from target",
					"candidate", i+1,
					"seed", seed,
					"distance_km", distance/1000,
					"target_km", lengthMeters/1000,
				)
			}
			return &Candidate{Route: route, Seed: seed, DistanceKm: distance / 1000, order: i}, nil
		})
	}

	// Failed candidates return nil without error, so Wait never fails.
	results, _ := p.Wait()

	candidates := make([]Candidate, 0, n)
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].order < candidates[j].order
	})
	return candidates
}
