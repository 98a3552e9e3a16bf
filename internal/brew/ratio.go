package brew

import (
	"fmt"
	"math"
)

const (
	// DefaultWater is the water target used when no usable pairing is supplied.
	DefaultWater = 210
	// DefaultCoffee is the coffee dose used when no usable pairing is supplied.
	DefaultCoffee = 15
)

// DefaultPlan is the fallback plan for Normalize.
var DefaultPlan = Plan{Water: DefaultWater, Coffee: DefaultCoffee}

// Inputs are the quantities supplied by the user. Nil means not supplied.
type Inputs struct {
	Water  *int
	Coffee *int
	Ratio  *float64
}

// Plan is a resolved water/coffee pair in grams.
type Plan struct {
	Water  int `json:"water"  yaml:"water"`
	Coffee int `json:"coffee" yaml:"coffee"`
}

// Ratio returns the coffee to water ratio of the plan.
func (p Plan) Ratio() float64 {
	if p.Water == 0 {
		return 0
	}
	return float64(p.Coffee) / float64(p.Water)
}

// Validate rejects ambiguous or non-positive inputs.
func (in Inputs) Validate() error {
	if in.Water != nil && in.Coffee != nil && in.Ratio != nil {
		return ErrAmbiguousInput
	}
	if in.Water != nil && *in.Water <= 0 {
		return fmt.Errorf("%w: water must be > 0, got %d", ErrInvalidQuantity, *in.Water)
	}
	if in.Coffee != nil && *in.Coffee <= 0 {
		return fmt.Errorf("%w: coffee must be > 0, got %d", ErrInvalidQuantity, *in.Coffee)
	}
	if in.Ratio != nil && (math.IsNaN(*in.Ratio) || math.IsInf(*in.Ratio, 0) || *in.Ratio <= 0) {
		return fmt.Errorf("%w: ratio must be a finite number > 0, got %g", ErrInvalidQuantity, *in.Ratio)
	}
	return nil
}

// Paired reports whether the inputs form a complete pairing.
func (in Inputs) Paired() bool {
	n := 0
	if in.Water != nil {
		n++
	}
	if in.Coffee != nil {
		n++
	}
	if in.Ratio != nil {
		n++
	}
	return n >= 2
}

// CanonicalRatio converts a water:coffee ratio (> 1) to coffee:water.
// Values of 1 or less are returned unchanged.
func CanonicalRatio(r float64) float64 {
	if r > 1 {
		return 1 / r
	}
	return r
}

// Normalize resolves inputs into a plan, falling back to DefaultPlan.
func Normalize(in Inputs) (Plan, error) {
	return NormalizeWith(in, DefaultPlan)
}

// NormalizeWith resolves inputs into a plan. When the inputs do not contain a
// complete pairing the fallback plan is returned.
func NormalizeWith(in Inputs, fallback Plan) (Plan, error) {
	if err := in.Validate(); err != nil {
		return Plan{}, err
	}
	switch {
	case in.Water != nil && in.Coffee != nil:
		return Plan{Water: *in.Water, Coffee: *in.Coffee}, nil
	case in.Water != nil && in.Ratio != nil:
		water := *in.Water
		coffee, err := derive("coffee", float64(water)*CanonicalRatio(*in.Ratio))
		if err != nil {
			return Plan{}, err
		}
		return Plan{Water: water, Coffee: coffee}, nil
	case in.Coffee != nil && in.Ratio != nil:
		coffee := *in.Coffee
		water, err := derive("water", float64(coffee)/CanonicalRatio(*in.Ratio))
		if err != nil {
			return Plan{}, err
		}
		return Plan{Water: water, Coffee: coffee}, nil
	default:
		return fallback, nil
	}
}

// maxGrams bounds derived quantities so they stay representable as int.
const maxGrams = 1 << 31

// derive rounds a computed quantity and rejects anything that is not a whole
// gram or more.
func derive(name string, x float64) (int, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x > maxGrams {
		return 0, fmt.Errorf("%w: derived %s out of range: %g", ErrInvalidQuantity, name, x)
	}
	g := Round(x)
	if g < 1 {
		return 0, fmt.Errorf("%w: derived %s must be >= 1g, got %g", ErrInvalidQuantity, name, x)
	}
	return g, nil
}
