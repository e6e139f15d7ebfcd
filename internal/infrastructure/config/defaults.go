package config

import "fmt"

// Default values used when session.json leaves a field unset
const (
	DefaultFuelMax            = 100.0
	DefaultSecondsToEmpty     = 60.0
	DefaultFuelTiers          = 10
	DefaultIntroDuration      = 2.0
	DefaultSpawnDuration      = 1.5
	DefaultSpawnInvincibility = 2.0
	DefaultFramerate          = 60
)

// Default returns a complete config with every default applied
func Default() *SessionConfig {
	cfg := &SessionConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields. LoadSession keeps an explicit zero
// for timing.spawnInvincibility, fuel.tiers and player.lives.
func (c *SessionConfig) ApplyDefaults() {
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = 320
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = 240
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = 2
	}
	if c.Display.Framerate == 0 {
		c.Display.Framerate = DefaultFramerate
	}

	if c.Timing.IntroDuration == 0 {
		c.Timing.IntroDuration = DefaultIntroDuration
	}
	if c.Timing.SpawnDuration == 0 {
		c.Timing.SpawnDuration = DefaultSpawnDuration
	}
	if c.Timing.SpawnInvincibility == 0 {
		c.Timing.SpawnInvincibility = DefaultSpawnInvincibility
	}

	if c.Fuel.Max == 0 {
		c.Fuel.Max = DefaultFuelMax
	}
	if c.Fuel.SecondsToEmpty == 0 {
		c.Fuel.SecondsToEmpty = DefaultSecondsToEmpty
	}
	if c.Fuel.Tiers == 0 {
		c.Fuel.Tiers = DefaultFuelTiers
	}

	if c.Player.Hitpoints == 0 {
		c.Player.Hitpoints = 3
	}
	if c.Player.Lives == 0 {
		c.Player.Lives = 3
	}
	if c.Player.Damage == 0 {
		c.Player.Damage = 1
	}
	w, h := float64(c.Display.ScreenWidth), float64(c.Display.ScreenHeight)
	if c.Player.SpawnStart == (Point{}) {
		c.Player.SpawnStart = Point{X: w / 2, Y: h + 16}
	}
	if c.Player.SpawnFinish == (Point{}) {
		c.Player.SpawnFinish = Point{X: w / 2, Y: h * 0.8}
	}

	if c.Ship.Speed == 0 {
		c.Ship.Speed = 120
	}
	if c.Ship.Easing == 0 {
		c.Ship.Easing = 12
	}
	if c.Ship.Bounds == (BoundsConfig{}) {
		c.Ship.Bounds = BoundsConfig{MinX: 8, MinY: 8, MaxX: w - 8, MaxY: h - 8}
	}

	if c.Guns.Cooldown == 0 {
		c.Guns.Cooldown = 0.15
	}
	if c.Narrative.LineDuration == 0 {
		c.Narrative.LineDuration = 2.5
	}
}

// Validate reports the first unusable value
func (c *SessionConfig) Validate() error {
	switch {
	case c.Display.Framerate <= 0:
		return fmt.Errorf("display.framerate %d must be positive: %w", c.Display.Framerate, ErrInvalid)
	case c.Timing.IntroDuration <= 0:
		return fmt.Errorf("timing.introDuration %v must be positive: %w", c.Timing.IntroDuration, ErrInvalid)
	case c.Timing.SpawnDuration <= 0:
		return fmt.Errorf("timing.spawnDuration %v must be positive: %w", c.Timing.SpawnDuration, ErrInvalid)
	case c.Timing.SpawnInvincibility < 0:
		return fmt.Errorf("timing.spawnInvincibility %v must not be negative: %w", c.Timing.SpawnInvincibility, ErrInvalid)
	case c.Fuel.Max <= 0:
		return fmt.Errorf("fuel.max %v must be positive: %w", c.Fuel.Max, ErrInvalid)
	case c.Fuel.SecondsToEmpty <= 0:
		return fmt.Errorf("fuel.secondsToEmpty %v must be positive: %w", c.Fuel.SecondsToEmpty, ErrInvalid)
	case c.Fuel.Tiers < 0:
		return fmt.Errorf("fuel.tiers %d must not be negative: %w", c.Fuel.Tiers, ErrInvalid)
	case c.Player.Hitpoints <= 0:
		return fmt.Errorf("player.hitpoints %d must be positive: %w", c.Player.Hitpoints, ErrInvalid)
	case c.Player.Lives < 0:
		return fmt.Errorf("player.lives %d must not be negative: %w", c.Player.Lives, ErrInvalid)
	case c.Ship.Bounds.MinX > c.Ship.Bounds.MaxX || c.Ship.Bounds.MinY > c.Ship.Bounds.MaxY:
		return fmt.Errorf("ship.bounds %+v is inverted: %w", c.Ship.Bounds, ErrInvalid)
	case c.Hazards.Period < 0:
		return fmt.Errorf("hazards.period %v must not be negative: %w", c.Hazards.Period, ErrInvalid)
	case c.WinAfterSeconds < 0:
		return fmt.Errorf("winAfterSeconds %v must not be negative: %w", c.WinAfterSeconds, ErrInvalid)
	}
	for i, hit := range c.Hazards.Hits {
		if hit.At < 0 || hit.Damage < 0 {
			return fmt.Errorf("hazards.hits[%d] %+v has a negative field: %w", i, hit, ErrInvalid)
		}
	}
	return nil
}
