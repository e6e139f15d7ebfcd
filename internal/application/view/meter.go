package view

// Meter is the fuel gauge widget: a value bar plus a row of tier lamps.
// Lamps start lit; the fuel gauge switches them off as it drains.
type Meter struct {
	value float64
	max   float64
	tiers []bool
}

// NewMeter creates a meter with n lamps
func NewMeter(n int, max float64) *Meter {
	tiers := make([]bool, n)
	for i := range tiers {
		tiers[i] = true
	}
	return &Meter{tiers: tiers, max: max}
}

// SetValue implements fuel.Display
func (m *Meter) SetValue(v float64) {
	m.value = v
}

// TierCount implements fuel.Display
func (m *Meter) TierCount() int {
	return len(m.tiers)
}

// SetTierActive implements fuel.Display
func (m *Meter) SetTierActive(i int, active bool) {
	if i >= 0 && i < len(m.tiers) {
		m.tiers[i] = active
	}
}

// Value returns the last published value
func (m *Meter) Value() float64 {
	return m.value
}

// Fraction returns the value as a share of the maximum
func (m *Meter) Fraction() float64 {
	if m.max <= 0 {
		return 0
	}
	return m.value / m.max
}

// Tier reports whether lamp i is lit
func (m *Meter) Tier(i int) bool {
	return i >= 0 && i < len(m.tiers) && m.tiers[i]
}

// Lit returns the number of lit lamps
func (m *Meter) Lit() int {
	n := 0
	for _, on := range m.tiers {
		if on {
			n++
		}
	}
	return n
}
