package netdemo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

func at(base time.Time, ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func TestInterpolatedTransform_Empty(t *testing.T) {
	it := NewInterpolatedTransform(0)
	_, ok := it.Latest()
	assert.False(t, ok)
	assert.Equal(t, Transform{}, it.Sample(time.Now()))
}

func TestInterpolatedTransform_LerpBetweenSnapshots(t *testing.T) {
	base := time.Unix(1000, 0)
	it := NewInterpolatedTransform(0)
	require.True(t, it.Push(at(base, 0), Transform{Position: domain.V3(0, 0, 0), Rotation: 0}))
	require.True(t, it.Push(at(base, 100), Transform{Position: domain.V3(10, 0, 0), Rotation: 90}))

	got := it.Sample(at(base, 50))
	assert.True(t, got.Position.ApproxEqual(domain.V3(5, 0, 0), 1e-9), "position %+v", got.Position)
	assert.InDelta(t, 45, got.Rotation, 1e-9)

	// before oldest clamps
	assert.Equal(t, domain.V3(0, 0, 0), it.Sample(at(base, -50)).Position)
}

func TestInterpolatedTransform_RotationTakesShortestArc(t *testing.T) {
	base := time.Unix(1000, 0)
	it := NewInterpolatedTransform(0)
	it.Push(at(base, 0), Transform{Rotation: 350})
	it.Push(at(base, 100), Transform{Rotation: 10})

	got := it.Sample(at(base, 50)).Rotation
	if got > 180 {
		got -= 360
	}
	assert.InDelta(t, 0, got, 1e-9)
}

func TestInterpolatedTransform_ExtrapolationIsCapped(t *testing.T) {
	base := time.Unix(1000, 0)
	it := NewInterpolatedTransform(0)
	it.MaxExtrapolation = 100 * time.Millisecond
	it.Push(at(base, 0), Transform{Position: domain.V3(0, 0, 0)})
	it.Push(at(base, 100), Transform{Position: domain.V3(1, 0, 0)})

	got := it.Sample(at(base, 150))
	assert.True(t, got.Position.ApproxEqual(domain.V3(1.5, 0, 0), 1e-9), "position %+v", got.Position)

	got = it.Sample(at(base, 5000))
	assert.True(t, got.Position.ApproxEqual(domain.V3(2, 0, 0), 1e-9), "position %+v", got.Position)
}

func TestInterpolatedTransform_RejectsStaleAndBoundsBuffer(t *testing.T) {
	base := time.Unix(1000, 0)
	it := NewInterpolatedTransform(0)
	it.Capacity = 4

	require.True(t, it.Push(at(base, 100), Transform{Rotation: 1}))
	assert.False(t, it.Push(at(base, 100), Transform{Rotation: 2}))
	assert.False(t, it.Push(at(base, 50), Transform{Rotation: 3}))

	for i := 2; i <= 10; i++ {
		it.Push(at(base, i*100), Transform{Rotation: float64(i)})
	}
	assert.Equal(t, 4, it.Len())

	latest, ok := it.Latest()
	require.True(t, ok)
	assert.Equal(t, 10.0, latest.Rotation)
}

func TestInterpolatedTransform_SampleNowAppliesDelay(t *testing.T) {
	base := time.Unix(1000, 0)
	it := NewInterpolatedTransform(100 * time.Millisecond)
	it.now = func() time.Time { return at(base, 150) }
	it.Push(at(base, 0), Transform{Position: domain.V3(0, 0, 0)})
	it.Push(at(base, 100), Transform{Position: domain.V3(0, 0, 10)})

	got := it.SampleNow()
	assert.True(t, got.Position.ApproxEqual(domain.V3(0, 0, 5), 1e-9), "position %+v", got.Position)
}
