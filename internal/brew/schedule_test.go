package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomWater(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30, BloomWater(15))
	assert.Equal(t, 0, BloomWater(0))
	assert.Equal(t, 2*21, BloomWater(21))
}

func TestGenerateSchedule_Defaults(t *testing.T) {
	t.Parallel()

	steps, err := GenerateSchedule(DefaultPlan, DefaultTiming)
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{0, 30}, {30, 60}, {40, 73}, {50, 85}, {60, 98}, {70, 110}, {80, 123},
		{90, 135}, {100, 148}, {110, 160}, {120, 173}, {130, 185}, {140, 198}, {150, 210},
	}, steps)
}

func TestGenerateSchedule_ClampsOvershootingIncrement(t *testing.T) {
	t.Parallel()

	// (150-30)/25 = 4.8 increments, so the final checkpoint is clamped to 2:30.
	steps, err := GenerateSchedule(Plan{Water: 250, Coffee: 16}, Timing{PourTime: 150, BloomTime: 30, Increment: 25})
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{0, 32}, {30, 64}, {55, 103}, {80, 142}, {105, 180}, {130, 219}, {150, 250},
	}, steps)
}

func TestGenerateSchedule_CustomTiming(t *testing.T) {
	t.Parallel()

	steps, err := GenerateSchedule(Plan{Water: 300, Coffee: 18}, Timing{PourTime: 165, BloomTime: 45, Increment: 15})
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{0, 36}, {45, 72}, {60, 101}, {75, 129}, {90, 158}, {105, 186}, {120, 215}, {135, 243}, {150, 272}, {165, 300},
	}, steps)
}

func TestGenerateSchedule_BloomMeetsTarget(t *testing.T) {
	t.Parallel()

	steps, err := GenerateSchedule(Plan{Water: 200, Coffee: 120}, DefaultTiming)
	require.NoError(t, err)
	assert.Equal(t, []Step{{0, 240}}, steps)

	steps, err = GenerateSchedule(Plan{Water: 30, Coffee: 15}, DefaultTiming)
	require.NoError(t, err)
	assert.Equal(t, []Step{{0, 30}}, steps)
}

func TestGenerateSchedule_SecondBloomPourOvershoots(t *testing.T) {
	t.Parallel()

	// Bloom is 60g and the matching second pour would reach 120g of a 100g target.
	steps, err := GenerateSchedule(Plan{Water: 100, Coffee: 30}, DefaultTiming)
	require.NoError(t, err)
	assert.Equal(t, []Step{{0, 60}, {30, 100}, {150, 100}}, steps)
}

func TestGenerateSchedule_ClosesAtPourTimeWhenWaterRunsOutEarly(t *testing.T) {
	t.Parallel()

	steps, err := GenerateSchedule(Plan{Water: 61, Coffee: 15}, DefaultTiming)
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{0, 30}, {30, 60}, {40, 60}, {50, 60}, {60, 60}, {70, 60}, {80, 60}, {90, 61}, {150, 61},
	}, steps)
}

func TestGenerateSchedule_ZeroBloomTimePoursOnce(t *testing.T) {
	t.Parallel()

	steps, err := GenerateSchedule(Plan{Water: 210, Coffee: 15}, Timing{PourTime: 60, BloomTime: 0, Increment: 20})
	require.NoError(t, err)
	assert.Equal(t, []Step{{0, 30}, {0, 60}, {20, 110}, {40, 160}, {60, 210}}, steps)
}

func TestGenerateSchedule_Invariants(t *testing.T) {
	t.Parallel()

	timings := []Timing{
		DefaultTiming,
		{PourTime: 180, BloomTime: 40, Increment: 20},
		{PourTime: 200, BloomTime: 45, Increment: 7},
		{PourTime: 95, BloomTime: 30, Increment: 60},
		{PourTime: 31, BloomTime: 30, Increment: 1},
	}
	for _, timing := range timings {
		for _, water := range []int{150, 210, 333, 500, 1000} {
			for _, coffee := range []int{8, 15, 22, 36} {
				plan := Plan{Water: water, Coffee: coffee}
				steps, err := GenerateSchedule(plan, timing)
				require.NoError(t, err)
				require.NotEmpty(t, steps)

				assert.Equal(t, Step{At: 0, Water: 2 * coffee}, steps[0])
				if len(steps) == 1 {
					assert.GreaterOrEqual(t, 2*coffee, water)
					continue
				}

				last := steps[len(steps)-1]
				assert.Equal(t, Step{At: timing.PourTime, Water: water}, last, "plan %+v timing %+v", plan, timing)

				bound := (timing.PourTime-timing.BloomTime)/timing.Increment + 4
				assert.LessOrEqual(t, len(steps), bound)
				for i := 1; i < len(steps); i++ {
					assert.GreaterOrEqual(t, steps[i].Water, 0)
					assert.LessOrEqual(t, steps[i].Water, water)
					if i > 1 {
						assert.Greater(t, steps[i].At, steps[i-1].At)
						assert.GreaterOrEqual(t, steps[i].Water, steps[i-1].Water)
					}
				}
			}
		}
	}
}

func TestGenerateSchedule_RejectsInvalidTiming(t *testing.T) {
	t.Parallel()

	for _, timing := range []Timing{
		{PourTime: 150, BloomTime: 30, Increment: 0},
		{PourTime: 150, BloomTime: 30, Increment: -5},
		{PourTime: 30, BloomTime: 30, Increment: 10},
		{PourTime: 20, BloomTime: 30, Increment: 10},
		{PourTime: 150, BloomTime: -1, Increment: 10},
	} {
		_, err := GenerateSchedule(DefaultPlan, timing)
		require.ErrorIs(t, err, ErrInvalidTiming, "timing %+v", timing)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "water: 210g, coffee: 15g, ratio: 0.071, time: 2:30", Summarize(DefaultPlan, 150))
	assert.Equal(t, "water: 300g, coffee: 18g, ratio: 0.060, time: 3:05", Summarize(Plan{Water: 300, Coffee: 18}, 185))
}
