package triplet

import "math"

const (
	// perpendicularCos is the |cos| threshold below which two triplet
	// directions are treated as non-comparable.
	perpendicularCos = 1e-8
	// incomparableDist is the dissimilarity assigned to near-
	// perpendicular triplet pairs.
	incomparableDist = 1e8
)

// Metric is the scaled dissimilarity between oriented triplets. The
// scale divides the translational term so that distance and angle
// contributions are balanced; it is typically a multiple of the
// cloud's characteristic length.
type Metric struct {
	scale float64
}

// NewMetric returns a Metric with the given scale factor. The scale
// must be positive.
func NewMetric(scale float64) Metric {
	return Metric{scale: scale}
}

// Distance computes the dissimilarity between p and q: the larger of
// the two mutual perpendicular centre offsets, divided by the scale,
// plus the absolute tangent of the angle between the directions. Near-
// perpendicular pairs yield incomparableDist. The measure is symmetric
// and non-negative but not a metric (no triangle inequality).
func (m Metric) Distance(p, q Triplet) float64 {
	delta := q.Center.Sub(p.Center)
	perpP := delta.Sub(p.Direction.Mul(delta.Dot(p.Direction))).Norm2()

	deltaBack := p.Center.Sub(q.Center)
	perpQ := deltaBack.Sub(q.Direction.Mul(deltaBack.Dot(q.Direction))).Norm2()

	cos := p.Direction.Dot(q.Direction)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	if math.Abs(cos) < perpendicularCos {
		return incomparableDist
	}
	return math.Sqrt(math.Max(perpP, perpQ))/m.scale + math.Abs(math.Tan(math.Acos(cos)))
}
