package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"github.com/younwookim/starfall/internal/domain/entity"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

func TestControls_Axis(t *testing.T) {
	tests := []struct {
		name  string
		c     Controls
		wantX float64
		wantY float64
	}{
		{"idle", Controls{}, 0, 0},
		{"left", Controls{Left: true}, -1, 0},
		{"left and right cancel", Controls{Left: true, Right: true}, 0, 0},
		{"down", Controls{Down: true}, 0, 1},
		{"diagonal normalized", Controls{Right: true, Up: true}, 1 / math.Sqrt2, -1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.c.Axis()
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}
}

func newShipFixture() (*ShipSystem, *entity.PlayerState, *Controls) {
	player := entity.NewPlayerState(3, 3, 1, f64.Vec3{100, 100, 0}, f64.Vec3{100, 80, 0})
	controls := &Controls{}
	cfg := config.ShipConfig{
		Speed:  100,
		Easing: 1000,
		Bounds: config.BoundsConfig{MinX: 0, MinY: 0, MaxX: 200, MaxY: 150},
	}
	return NewShipSystem(cfg, player, controls), player, controls
}

func TestShipSystem_ForceSetPosition(t *testing.T) {
	ship, player, _ := newShipFixture()
	player.PositionTarget = f64.Vec3{1, 2, 0}

	ship.ForceSetPosition(f64.Vec3{50, 60, 0})

	assert.Equal(t, f64.Vec3{50, 60, 0}, player.PositionCurrent)
	assert.Equal(t, f64.Vec3{50, 60, 0}, player.PositionTarget)
}

func TestShipSystem_Steers(t *testing.T) {
	ship, player, controls := newShipFixture()
	controls.Right = true

	ship.Update(0.5)

	assert.Equal(t, f64.Vec3{150, 100, 0}, player.PositionTarget)
	assert.Equal(t, f64.Vec3{150, 100, 0}, player.PositionCurrent, "high easing snaps to target")
}

func TestShipSystem_ClampsToBounds(t *testing.T) {
	ship, player, controls := newShipFixture()
	controls.Down = true
	controls.Left = true

	for i := 0; i < 100; i++ {
		ship.Update(0.5)
	}

	assert.Equal(t, 0.0, player.PositionTarget[0])
	assert.Equal(t, 150.0, player.PositionTarget[1])
}

func TestShipSystem_EasesTowardTarget(t *testing.T) {
	ship, player, _ := newShipFixture()
	ship.config.Easing = 2
	player.PositionTarget = f64.Vec3{100, 0, 0}

	ship.Update(0.25)

	assert.Equal(t, f64.Vec3{100, 50, 0}, player.PositionCurrent)
}

func TestShipSystem_FollowIgnoresControls(t *testing.T) {
	ship, player, controls := newShipFixture()
	ship.config.Easing = 2
	controls.Left = true
	player.PositionTarget = f64.Vec3{100, 0, 0}

	ship.Follow(0.25)

	assert.Equal(t, f64.Vec3{100, 0, 0}, player.PositionTarget)
	assert.Equal(t, f64.Vec3{100, 50, 0}, player.PositionCurrent)
}

func TestGunsSystem_Cooldown(t *testing.T) {
	player := &entity.PlayerState{DamageCurrent: 4}
	controls := &Controls{Fire: true}
	guns := NewGunsSystem(config.GunsConfig{Cooldown: 0.5}, player, controls)

	var damages []int
	guns.OnFire = func(_ f64.Vec3, damage int) { damages = append(damages, damage) }

	// 2 seconds of held trigger in quarter seconds: fires at 0, 0.5, 1.0, 1.5
	for i := 0; i < 8; i++ {
		guns.Update(0.25)
	}

	assert.Equal(t, 4, guns.ShotsFired())
	assert.Equal(t, []int{4, 4, 4, 4}, damages)

	controls.Fire = false
	guns.Update(1)
	assert.Equal(t, 4, guns.ShotsFired())
}

// sinkRecorder records hits
type sinkRecorder struct {
	hits []int
}

func (s *sinkRecorder) Hit(amount int) { s.hits = append(s.hits, amount) }

func TestHazardSystem_Timeline(t *testing.T) {
	sink := &sinkRecorder{}
	hazards := NewHazardSystem(config.HazardsConfig{
		Hits: []config.HazardHit{{At: 2, Damage: 5}, {At: 1, Damage: 1}},
	}, sink)

	hazards.Update(0.5)
	assert.Empty(t, sink.hits)

	hazards.Update(0.5)
	assert.Equal(t, []int{1}, sink.hits)

	hazards.Update(5)
	assert.Equal(t, []int{1, 5}, sink.hits)

	hazards.Update(5)
	assert.Equal(t, []int{1, 5}, sink.hits, "without a period the timeline plays once")
}

func TestHazardSystem_Repeats(t *testing.T) {
	sink := &sinkRecorder{}
	hazards := NewHazardSystem(config.HazardsConfig{
		Period: 2,
		Hits:   []config.HazardHit{{At: 1, Damage: 3}},
	}, sink)

	for i := 0; i < 8; i++ {
		hazards.Update(0.5)
	}

	assert.Equal(t, []int{3, 3}, sink.hits)
	assert.Equal(t, 0.0, hazards.Elapsed())
}

func TestShieldSystem_AbsorbsThenHitpoints(t *testing.T) {
	player := &entity.PlayerState{HitpointsCurrent: 3, HitpointsBase: 3, LivesCurrent: 2}
	shield := NewShieldSystem(config.ShieldConfig{Max: 2}, player)

	shield.Hit(1)
	shield.Update(0)
	assert.Equal(t, 1.0, shield.Shield())
	assert.Equal(t, 3, player.HitpointsCurrent)

	shield.Hit(3)
	shield.Update(0)
	assert.Equal(t, 0.0, shield.Shield())
	assert.Equal(t, 1, player.HitpointsCurrent)

	shield.Hit(9)
	shield.Update(0)
	assert.Equal(t, 0, player.HitpointsCurrent, "hitpoints never go negative")
	assert.Equal(t, 1, player.LivesCurrent, "emptying hitpoints costs a life")

	shield.Hit(1)
	shield.Update(0)
	assert.Equal(t, 1, player.LivesCurrent, "no further loss while empty")

	absorbed, taken := shield.Totals()
	assert.Equal(t, 2, absorbed)
	assert.Equal(t, 12, taken)
}

func TestShieldSystem_InvincibleIgnoresHits(t *testing.T) {
	player := &entity.PlayerState{HitpointsCurrent: 3, Invincible: true}
	shield := NewShieldSystem(config.ShieldConfig{Max: 0}, player)

	shield.Hit(5)
	shield.Update(0.1)
	assert.Equal(t, 3, player.HitpointsCurrent)

	// Dropped hits do not land once invincibility ends
	player.Invincible = false
	shield.Update(0.1)
	assert.Equal(t, 3, player.HitpointsCurrent)
}

func TestShieldSystem_RegenAndReset(t *testing.T) {
	player := &entity.PlayerState{HitpointsCurrent: 3}
	shield := NewShieldSystem(config.ShieldConfig{Max: 2, RegenPerSecond: 0.5}, player)

	shield.Hit(2)
	shield.Update(0)
	require.Equal(t, 0.0, shield.Shield())

	shield.Update(1)
	assert.Equal(t, 0.5, shield.Shield())

	shield.Update(10)
	assert.Equal(t, 2.0, shield.Shield(), "regen caps at max")

	shield.Hit(2)
	shield.Update(0)
	shield.Hit(4)
	shield.OnSpawnReset()
	shield.Update(0)
	assert.Equal(t, 2.0, shield.Shield())
	assert.Equal(t, 3, player.HitpointsCurrent, "queued hits dropped by reset")
}

func TestNarrativeSystem(t *testing.T) {
	controls := &Controls{}
	narrative := NewNarrativeSystem(config.NarrativeConfig{
		LineDuration: 1,
		Lines:        []string{"one", "two", "three"},
	}, controls)

	_, showing := narrative.Line()
	assert.False(t, showing)

	narrative.StartDialogue()
	line, showing := narrative.Line()
	require.True(t, showing)
	assert.Equal(t, "one", line)

	assert.False(t, narrative.Update(0.5))
	assert.False(t, narrative.Update(0.5))
	line, _ = narrative.Line()
	assert.Equal(t, "two", line)

	controls.Advance = true
	assert.False(t, narrative.Update(0.01))
	line, _ = narrative.Line()
	assert.Equal(t, "three", line)

	assert.True(t, narrative.Update(0.01))
	_, showing = narrative.Line()
	assert.False(t, showing)
}

func TestNarrativeSystem_CleanupAndEmpty(t *testing.T) {
	controls := &Controls{}
	narrative := NewNarrativeSystem(config.NarrativeConfig{LineDuration: 1, Lines: []string{"a", "b"}}, controls)

	narrative.StartDialogue()
	narrative.CleanupNarrative()
	_, showing := narrative.Line()
	assert.False(t, showing)
	assert.True(t, narrative.Update(0.1))

	empty := NewNarrativeSystem(config.NarrativeConfig{LineDuration: 1}, controls)
	empty.StartDialogue()
	assert.True(t, empty.Update(0.1))
}
