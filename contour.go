package volr

// TracePhase tags the state of a contour extraction along one ray.
// The machine moves Searching -> Bracketed -> Refining and terminates in
// Hit or Miss; transitions are pure so the machine can be unit-tested
// away from any execution backend.
type TracePhase uint8

const (
	// TraceSearching: no sign change found yet.
	TraceSearching TracePhase = iota

	// TraceBracketed: two consecutive samples straddle the threshold.
	TraceBracketed

	// TraceRefining: bisection is narrowing the bracket.
	TraceRefining

	// TraceHit: terminal, the crossing was localized.
	TraceHit

	// TraceMiss: terminal, the ray left the volume without a crossing.
	TraceMiss
)

// String returns the phase name.
func (p TracePhase) String() string {
	switch p {
	case TraceSearching:
		return "searching"
	case TraceBracketed:
		return "bracketed"
	case TraceRefining:
		return "refining"
	case TraceHit:
		return "hit"
	case TraceMiss:
		return "miss"
	}
	return "unknown"
}

// Trace is the tagged state of one contour extraction. The zero value is
// a fresh Searching state.
type Trace struct {
	Phase TracePhase

	// Bracket endpoints, valid in Bracketed and Refining: parametric
	// distances T0 < T1 with field values V0, V1 on opposite sides of
	// the threshold.
	T0, T1 float64
	V0, V1 float64

	// prev* remember the last valid sample while searching.
	prevT  float64
	prevV  float64
	prevOK bool
}

// Observe consumes the sample at parametric distance t and returns the
// successor state. An invalid sample (outside the volume) is empty
// space: it can never form a bracket, and it resets the search so a
// crossing is not conjured across a gap in coverage. A sample exactly on
// the threshold counts as a crossing.
func (tr Trace) Observe(t, value float64, valid bool, threshold float64) Trace {
	if tr.Phase != TraceSearching {
		return tr
	}
	if !valid {
		tr.prevOK = false
		return tr
	}
	if tr.prevOK && (tr.prevV-threshold)*(value-threshold) <= 0 {
		return Trace{
			Phase: TraceBracketed,
			T0:    tr.prevT, T1: t,
			V0: tr.prevV, V1: value,
		}
	}
	tr.prevT, tr.prevV, tr.prevOK = t, value, true
	return tr
}

// ContourHit is the terminal result of a successful trace.
type ContourHit struct {
	// Point is the refined crossing in world space.
	Point Vec3

	// T is the parametric distance from the ray origin.
	T float64

	// Gradient is the estimated field gradient at the hit point.
	Gradient Vec3

	// Normal is the unit shading normal: the normalized gradient, or
	// the negated ray direction when the gradient magnitude vanishes.
	Normal Vec3
}

// DefaultRefineSteps is the bisection iteration count used when none is
// configured. Eight halvings narrow the bracket to 1/256 of a march
// step, below float32 sampling noise on typical grids.
const DefaultRefineSteps = 8

// refineBisect narrows a bracket [tr.T0, tr.T1] along the ray by fixed
// bisection. If a midpoint sample is invalid (the bracket straddles the
// volume boundary), refinement stops and the last valid bracket midpoint
// is returned.
func refineBisect(v *Volume, r Ray, tr Trace, threshold float64, iters int) float64 {
	lo, hi := tr.T0, tr.T1
	loVal := tr.V0
	for i := 0; i < iters; i++ {
		mid := (lo + hi) / 2
		val, ok := v.Sample(r.At(mid))
		if !ok {
			break
		}
		if (loVal-threshold)*(val-threshold) <= 0 {
			hi = mid
		} else {
			lo, loVal = mid, val
		}
	}
	return (lo + hi) / 2
}

// TraceContour marches the ray through the volume looking for the first
// crossing of the threshold, nearest to the ray origin, and refines it
// by bisection. A non-positive step defaults to the smallest voxel
// spacing; iters <= 0 uses DefaultRefineSteps.
func (v *Volume) TraceContour(r Ray, threshold, step float64, iters int) (ContourHit, bool) {
	if iters <= 0 {
		iters = DefaultRefineSteps
	}
	m := v.March(r, step)
	tr := Trace{}
	for {
		p, t, more := m.Next()
		if !more {
			return ContourHit{}, false
		}
		val, ok := v.Sample(p)
		tr = tr.Observe(t, val, ok, threshold)
		if tr.Phase == TraceBracketed {
			break
		}
	}

	tr.Phase = TraceRefining
	tHit := refineBisect(v, r, tr, threshold, iters)
	point := r.At(tHit)

	hit := ContourHit{Point: point, T: tHit}
	grad, gradOK := v.SampleGradient(point)
	hit.Gradient = grad
	if gradOK && grad.LengthSq() > 0 {
		hit.Normal = grad.Normalize()
	} else {
		// Degenerate gradient: face the camera so shading stays defined.
		hit.Normal = r.Direction.Neg()
	}
	return hit, true
}
