package config

import "golang.org/x/image/math/f64"

// SessionConfig is the root config for session.json
type SessionConfig struct {
	Display   DisplayConfig   `json:"display"`
	Opening   OpeningConfig   `json:"opening"`
	Timing    TimingConfig    `json:"timing"`
	Fuel      FuelConfig      `json:"fuel"`
	Player    PlayerConfig    `json:"player"`
	Ship      ShipConfig      `json:"ship"`
	Shield    ShieldConfig    `json:"shield"`
	Guns      GunsConfig      `json:"guns"`
	Hazards   HazardsConfig   `json:"hazards"`
	Narrative NarrativeConfig `json:"narrative"`

	// WinAfterSeconds ends the session in a win after this much Play time.
	// Zero disables the win condition.
	WinAfterSeconds float64 `json:"winAfterSeconds,omitempty"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// OpeningConfig selects how a session starts.
// Without PlayIntro the session goes straight to Spawn.
type OpeningConfig struct {
	PlayIntro bool `json:"playIntro"`
}

type TimingConfig struct {
	IntroDuration      float64 `json:"introDuration"`      // seconds
	SpawnDuration      float64 `json:"spawnDuration"`      // seconds
	SpawnInvincibility float64 `json:"spawnInvincibility"` // seconds of damage immunity after a respawn
}

type FuelConfig struct {
	Max            float64 `json:"max"`
	SecondsToEmpty float64 `json:"secondsToEmpty"`
	Tiers          int     `json:"tiers"` // meter lamps, 10 fuel each
}

type PlayerConfig struct {
	Hitpoints   int   `json:"hitpoints"`
	Lives       int   `json:"lives"`
	Damage      int   `json:"damage"`
	SpawnStart  Point `json:"spawnStart"`
	SpawnFinish Point `json:"spawnFinish"`
}

// Point is a 2D position in screen pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec returns the point on the z=0 plane
func (p Point) Vec() f64.Vec3 {
	return f64.Vec3{p.X, p.Y, 0}
}

type ShipConfig struct {
	Speed  float64      `json:"speed"`  // pixels per second
	Easing float64      `json:"easing"` // catch-up rate toward the target, per second
	Bounds BoundsConfig `json:"bounds"`
}

type BoundsConfig struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

type ShieldConfig struct {
	Max            float64 `json:"max"`
	RegenPerSecond float64 `json:"regenPerSecond"`
}

type GunsConfig struct {
	Cooldown float64 `json:"cooldown"` // seconds between shots
}

// HazardsConfig is a scripted damage timeline replayed every Period seconds
// of Play time.
type HazardsConfig struct {
	Period float64     `json:"period"`
	Hits   []HazardHit `json:"hits"`
}

type HazardHit struct {
	At     float64 `json:"at"`
	Damage int     `json:"damage"`
}

type NarrativeConfig struct {
	LineDuration float64  `json:"lineDuration"`
	Lines        []string `json:"lines"`
}
