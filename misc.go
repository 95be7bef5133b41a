package papercraft

import "github.com/go-gl/mathgl/mgl64"

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	return mgl64.Clamp(value, min, max)
}
