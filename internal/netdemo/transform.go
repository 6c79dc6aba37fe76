package netdemo

import (
	"time"

	"github.com/kylepfurey/FureyLib-sub005/internal/container"
	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// Transform is the networked part of an entity: a position and a yaw in
// degrees.
type Transform struct {
	Position domain.Vec3 `json:"position"`
	Rotation float64     `json:"rotation"`
}

type snapshot struct {
	at time.Time
	tr Transform
}

// InterpolatedTransform buffers timestamped snapshots of a remote entity
// and samples a smoothed transform for any render time.
type InterpolatedTransform struct {
	// Delay is subtracted from the current time by SampleNow so that two
	// snapshots usually bracket the render time.
	Delay time.Duration
	// MaxExtrapolation bounds how far past the newest snapshot motion is
	// projected.
	MaxExtrapolation time.Duration
	// Capacity bounds the snapshot buffer.
	Capacity int

	buf  *container.Queue[snapshot]
	last snapshot
	prev snapshot
	now  func() time.Time
}

func NewInterpolatedTransform(delay time.Duration) *InterpolatedTransform {
	return &InterpolatedTransform{
		Delay:            delay,
		MaxExtrapolation: 250 * time.Millisecond,
		Capacity:         32,
		buf:              container.NewQueue[snapshot](),
		now:              time.Now,
	}
}

// Push records a snapshot. Snapshots older than the newest one are dropped.
func (it *InterpolatedTransform) Push(at time.Time, tr Transform) bool {
	if it.buf.Len() > 0 && !at.After(it.last.at) {
		return false
	}
	if it.buf.Len() > 0 {
		it.prev = it.last
	}
	it.last = snapshot{at: at, tr: tr}
	it.buf.Enqueue(it.last)

	max := it.Capacity
	if max < 2 {
		max = 2
	}
	for it.buf.Len() > max {
		it.buf.Dequeue()
	}
	return true
}

func (it *InterpolatedTransform) Len() int { return it.buf.Len() }

// Latest returns the newest snapshot.
func (it *InterpolatedTransform) Latest() (Transform, bool) {
	if it.buf.Len() == 0 {
		return Transform{}, false
	}
	return it.last.tr, true
}

// SampleNow samples at now minus Delay.
func (it *InterpolatedTransform) SampleNow() Transform {
	return it.Sample(it.now().Add(-it.Delay))
}

// Sample returns the transform at t:
//   - before the oldest snapshot: the oldest snapshot;
//   - between two snapshots: linear interpolation (shortest arc for rotation);
//   - after the newest: extrapolated along the last velocity for at most
//     MaxExtrapolation, then held.
func (it *InterpolatedTransform) Sample(t time.Time) Transform {
	snaps := it.buf.Slice()
	switch len(snaps) {
	case 0:
		return Transform{}
	case 1:
		return snaps[0].tr
	}

	if !t.After(snaps[0].at) {
		return snaps[0].tr
	}

	for i := 1; i < len(snaps); i++ {
		a, b := snaps[i-1], snaps[i]
		if t.After(b.at) {
			continue
		}
		return blend(a, b, t)
	}

	over := t.Sub(it.last.at)
	if over > it.MaxExtrapolation {
		over = it.MaxExtrapolation
	}
	return blend(it.prev, it.last, it.last.at.Add(over))
}

func blend(a, b snapshot, t time.Time) Transform {
	span := b.at.Sub(a.at)
	if span <= 0 {
		return b.tr
	}
	f := float64(t.Sub(a.at)) / float64(span)
	return Transform{
		Position: domain.Lerp(a.tr.Position, b.tr.Position, f),
		Rotation: domain.LerpAngle(a.tr.Rotation, b.tr.Rotation, f),
	}
}
