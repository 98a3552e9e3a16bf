package brew

import "fmt"

const (
	// DefaultPourTime is the default time of the last pour, in seconds.
	DefaultPourTime = 150
	// DefaultBloomTime is the default bloom duration, in seconds.
	DefaultBloomTime = 30
	// DefaultIncrement is the default spacing between pour checkpoints, in seconds.
	DefaultIncrement = 10
)

// DefaultTiming is the timing used when nothing else is configured.
var DefaultTiming = Timing{PourTime: DefaultPourTime, BloomTime: DefaultBloomTime, Increment: DefaultIncrement}

// Timing holds the schedule timing parameters in seconds.
type Timing struct {
	PourTime  int `json:"pour_time"  yaml:"pour_time"`
	BloomTime int `json:"bloom_time" yaml:"bloom_time"`
	Increment int `json:"increment"  yaml:"increment"`
}

// Validate checks that the timing produces a finite, non-degenerate schedule.
func (t Timing) Validate() error {
	if t.Increment <= 0 {
		return fmt.Errorf("%w: increment must be > 0, got %d", ErrInvalidTiming, t.Increment)
	}
	if t.BloomTime < 0 {
		return fmt.Errorf("%w: bloom time must be >= 0, got %d", ErrInvalidTiming, t.BloomTime)
	}
	if t.BloomTime >= t.PourTime {
		return fmt.Errorf("%w: bloom time %s must be before pour time %s",
			ErrInvalidTiming, FormatTime(t.BloomTime), FormatTime(t.PourTime))
	}
	return nil
}

// Step is a single checkpoint: by At seconds, Water grams should be in.
type Step struct {
	At    int `json:"at"    yaml:"at"`
	Water int `json:"water" yaml:"water"`
}

// GenerateSchedule builds the pour schedule for a plan.
//
// The first step is the bloom pour at 0:00. The first pour after bloom matches
// the bloom pour in size and the rest of the water is spread evenly over the
// remaining increments. When the bloom alone meets the target the schedule is
// the single bloom step. Otherwise the last step is always the full target at
// the pour time.
func GenerateSchedule(plan Plan, timing Timing) ([]Step, error) {
	if err := timing.Validate(); err != nil {
		return nil, err
	}

	bloom := BloomWater(plan.Coffee)
	total := float64(plan.Water)
	steps := []Step{{At: 0, Water: bloom}}

	remaining := total - float64(bloom)
	if Round(remaining) <= 0 {
		return steps, nil
	}

	timer := 0
	perStep := 0.0
	poured := false
	for Round(remaining) > 0 {
		switch {
		case !poured:
			poured = true
			remaining -= float64(bloom)
			timer = timing.BloomTime
			stepCount := float64(timing.PourTime-timer) / float64(timing.Increment)
			perStep = remaining / stepCount
		case timer+timing.Increment > timing.PourTime:
			remaining = 0
			timer = timing.PourTime
		default:
			remaining -= perStep
			timer += timing.Increment
		}
		if remaining < 0 {
			remaining = 0
		}
		steps = append(steps, Step{At: timer, Water: Round(total - remaining)})
	}

	if last := steps[len(steps)-1]; last.At != timing.PourTime {
		steps = append(steps, Step{At: timing.PourTime, Water: plan.Water})
	}
	return steps, nil
}
