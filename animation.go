package acg

import (
	"sort"

	"github.com/qmuntal/gltf"
	"github.com/tanema/gween/ease"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// AnimationTrack animates one property of a Node (translation, rotation or scale) through keyframes.
type AnimationTrack struct {
	Path          gltf.TRSProperty
	Interpolation gltf.Interpolation
	// Times are the keyframe times in seconds, ascending.
	Times []float32
	// Values holds 3 (translation, scale) or 4 (rotation quaternion) floats per keyframe. Cubic-spline tracks
	// store an in-tangent, the value and an out-tangent for every keyframe.
	Values []float32
	// Easing, if set, reshapes the 0-1 factor between two linear keyframes.
	Easing ease.TweenFunc
}

// NewAnimationTrack creates a linear track.
func NewAnimationTrack(path gltf.TRSProperty, times, values []float32) *AnimationTrack {
	return &AnimationTrack{
		Path:          path,
		Interpolation: gltf.InterpolationLinear,
		Times:         times,
		Values:        values,
	}
}

func (track *AnimationTrack) components() int {
	if track.Path == gltf.TRSRotation {
		return 4
	}
	return 3
}

// value returns the keyframe value at key, skipping the tangents of cubic-spline tracks.
func (track *AnimationTrack) value(key int) Vector4 {
	return track.element(key, 1)
}

// element returns element e (0 in-tangent, 1 value, 2 out-tangent) of keyframe key.
func (track *AnimationTrack) element(key, e int) Vector4 {
	n := track.components()
	stride := n
	offset := 0
	if track.Interpolation == gltf.InterpolationCubicSpline {
		stride = n * 3
		offset = n * e
	}
	i := key*stride + offset
	v := Vector4{X: track.Values[i], Y: track.Values[i+1], Z: track.Values[i+2]}
	if n == 4 {
		v.W = track.Values[i+3]
	}
	return v
}

// Duration returns the time of the track's last keyframe.
func (track *AnimationTrack) Duration() float32 {
	if len(track.Times) == 0 {
		return 0
	}
	return track.Times[len(track.Times)-1]
}

// Sample returns the track's value at time t, holding the first and last keyframes outside of the track's range.
// Rotations come back as X, Y, Z, W of a unit quaternion.
func (track *AnimationTrack) Sample(t float32) Vector4 {

	count := len(track.Times)
	if count == 0 {
		return Vector4{}
	}
	if t <= track.Times[0] {
		return track.value(0)
	}
	if t >= track.Times[count-1] {
		return track.value(count - 1)
	}

	// Index of the first keyframe after t.
	next := sort.Search(count, func(i int) bool { return track.Times[i] > t })
	prev := next - 1

	dt := track.Times[next] - track.Times[prev]
	s := (t - track.Times[prev]) / dt

	switch track.Interpolation {

	case gltf.InterpolationStep:
		return track.value(prev)

	case gltf.InterpolationCubicSpline:
		p0 := track.value(prev)
		m0 := track.element(prev, 2).Scale(dt)
		p1 := track.value(next)
		m1 := track.element(next, 0).Scale(dt)
		s2 := s * s
		s3 := s2 * s
		v := p0.Scale(2*s3 - 3*s2 + 1).
			Add(m0.Scale(s3 - 2*s2 + s)).
			Add(p1.Scale(-2*s3 + 3*s2)).
			Add(m1.Scale(s3 - s2))
		if track.Path == gltf.TRSRotation {
			q := Quaternion{v.X, v.Y, v.Z, v.W}.Unit()
			return Vector4{q.X, q.Y, q.Z, q.W}
		}
		return v

	default:
		if track.Easing != nil {
			s = math32.Saturate(track.Easing(s, 0, 1, 1))
		}
		a, b := track.value(prev), track.value(next)
		if track.Path == gltf.TRSRotation {
			q := Quaternion{a.X, a.Y, a.Z, a.W}.Slerp(Quaternion{b.X, b.Y, b.Z, b.W}, s)
			return Vector4{q.X, q.Y, q.Z, q.W}
		}
		return a.Lerp(b, s)

	}

}

// Animation is a set of tracks played back together on a Node.
type Animation struct {
	Name   string
	Tracks []*AnimationTrack
	// Loop wraps playback time around the animation's duration; otherwise the last pose is held.
	Loop bool
}

// NewAnimation creates a looping Animation.
func NewAnimation(name string, tracks ...*AnimationTrack) *Animation {
	return &Animation{Name: name, Tracks: tracks, Loop: true}
}

// Duration returns the length of the longest track.
func (anim *Animation) Duration() float32 {
	var d float32
	for _, track := range anim.Tracks {
		d = math32.Max(d, track.Duration())
	}
	return d
}

// Apply overwrites the translation, rotation and scale targeted by the Animation's tracks with their values at time t.
func (anim *Animation) Apply(t float32, translation *Vector3, rotation *Quaternion, scale *Vector3) {

	if duration := anim.Duration(); anim.Loop && duration > 0 {
		t = math32.Mod(t, duration)
		if t < 0 {
			t += duration
		}
	}

	for _, track := range anim.Tracks {
		v := track.Sample(t)
		switch track.Path {
		case gltf.TRSTranslation:
			*translation = v.Vector3()
		case gltf.TRSRotation:
			*rotation = Quaternion{v.X, v.Y, v.Z, v.W}
		case gltf.TRSScale:
			*scale = v.Vector3()
		}
	}

}
