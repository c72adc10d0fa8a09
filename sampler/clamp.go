package sampler

// Clamp maps x into the closed interval [0,1]. Values below 0 become 0,
// values above 1 become 1.
func Clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ClampVector clamps each trait independently.
func ClampVector(v Vector) Vector {
	for i := range v {
		v[i] = Clamp(v[i])
	}
	return v
}
