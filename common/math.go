package common

// Virtual canvas size. Entity positions live in this space regardless of the
// window size.
const (
	CanvasWidth  = 700
	CanvasHeight = 300
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
