package system

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/younwookim/starfall/internal/domain/entity"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// ShipSystem steers the player's ship.
//
// Controls move PositionTarget inside the bounds; PositionCurrent eases
// toward the target so forced moves and spawn slides stay smooth.
type ShipSystem struct {
	config   config.ShipConfig
	player   *entity.PlayerState
	controls *Controls
}

// NewShipSystem creates a new ship system
func NewShipSystem(cfg config.ShipConfig, player *entity.PlayerState, controls *Controls) *ShipSystem {
	return &ShipSystem{config: cfg, player: player, controls: controls}
}

// ForceSetPosition teleports the ship, clearing any pending easing
func (s *ShipSystem) ForceSetPosition(pos f64.Vec3) {
	s.player.PositionCurrent = pos
	s.player.PositionTarget = pos
}

// Update moves the ship for one frame
func (s *ShipSystem) Update(dt float64) {
	ax, ay := s.controls.Axis()
	target := s.player.PositionTarget
	target[0] = clamp(target[0]+ax*s.config.Speed*dt, s.config.Bounds.MinX, s.config.Bounds.MaxX)
	target[1] = clamp(target[1]+ay*s.config.Speed*dt, s.config.Bounds.MinY, s.config.Bounds.MaxY)
	s.player.PositionTarget = target

	s.Follow(dt)
}

// Follow eases the ship toward its target without reading controls.
// Used while the flow machine scripts the target during spawn slides.
func (s *ShipSystem) Follow(dt float64) {
	s.player.PositionCurrent = entity.Lerp(s.player.PositionCurrent, s.player.PositionTarget, s.config.Easing*dt)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
