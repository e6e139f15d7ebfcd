package system

import (
	"slices"

	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// DamageSink receives hits aimed at the player
type DamageSink interface {
	Hit(amount int)
}

// HazardSystem replays a scripted damage timeline. It stands in for enemy
// behaviour, which lives outside this game loop.
type HazardSystem struct {
	hits    []config.HazardHit
	period  float64
	sink    DamageSink
	elapsed float64
	next    int
}

// NewHazardSystem creates a hazard timeline delivering hits to sink
func NewHazardSystem(cfg config.HazardsConfig, sink DamageSink) *HazardSystem {
	hits := slices.Clone(cfg.Hits)
	slices.SortStableFunc(hits, func(a, b config.HazardHit) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return &HazardSystem{hits: hits, period: cfg.Period, sink: sink}
}

// Update delivers every hit scheduled up to the new elapsed time
func (s *HazardSystem) Update(dt float64) {
	s.elapsed += dt
	for s.next < len(s.hits) && s.hits[s.next].At <= s.elapsed {
		s.sink.Hit(s.hits[s.next].Damage)
		s.next++
	}
	if s.period > 0 && s.elapsed >= s.period {
		s.elapsed -= s.period
		s.next = 0
	}
}

// Elapsed returns the time into the current timeline cycle
func (s *HazardSystem) Elapsed() float64 {
	return s.elapsed
}
