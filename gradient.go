package minterm

// GradientDirection determines how a gradient is applied over a region.
type GradientDirection int

const (
	// GradientHorizontal runs left to right.
	GradientHorizontal GradientDirection = iota
	// GradientVertical runs top to bottom.
	GradientVertical
	// GradientDiagonalDown runs top-left to bottom-right.
	GradientDiagonalDown
	// GradientDiagonalUp runs bottom-left to top-right.
	GradientDiagonalUp
)

// Gradient interpolates between color stops in Luv space, which avoids the
// muddy midpoints naive RGB interpolation produces.
type Gradient struct {
	Stops     []Color
	Direction GradientDirection
}

// NewGradient creates a horizontal gradient over the given color stops.
func NewGradient(stops ...Color) Gradient {
	return Gradient{Stops: stops}
}

// WithDirection returns a copy of the gradient with the given direction.
func (g Gradient) WithDirection(d GradientDirection) Gradient {
	g.Direction = d
	return g
}

// At returns the gradient color at position t in [0, 1].
func (g Gradient) At(t float64) Color {
	switch len(g.Stops) {
	case 0:
		return Color{}
	case 1:
		return g.Stops[0]
	}

	if t <= 0 {
		return g.Stops[0]
	}
	if t >= 1 {
		return g.Stops[len(g.Stops)-1]
	}

	// Locate the stop pair t falls between.
	scaled := t * float64(len(g.Stops)-1)
	i := int(scaled)
	frac := scaled - float64(i)

	from := g.Stops[i].colorfulValue()
	to := g.Stops[i+1].colorfulValue()
	r, gg, b := from.BlendLuv(to, frac).Clamped().RGB255()
	return RGBColor(r, gg, b)
}

// position maps a cell offset within a width x height region to a gradient
// position t in [0, 1] according to the direction.
func (g Gradient) position(dx, dy, width, height int) float64 {
	w := float64(max(width, 1))
	h := float64(max(height, 1))

	switch g.Direction {
	case GradientVertical:
		return float64(dy) / h
	case GradientDiagonalDown:
		return (float64(dx)/w + float64(dy)/h) / 2
	case GradientDiagonalUp:
		return (float64(dx)/w + float64(height-1-dy)/h) / 2
	default:
		return float64(dx) / w
	}
}
