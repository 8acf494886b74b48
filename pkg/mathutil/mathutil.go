// Package mathutil provides small numeric helpers shared across the tracer.
package mathutil

// Clamp restricts value between min and max.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Mod performs modulo that works correctly with negative numbers.
func Mod(n, m int) int {
	return ((n % m) + m) % m
}

// Mix combines a global seed with a worker index into a distinct per-worker
// seed, so concurrent sample passes are reproducible given the global seed.
func Mix(globalSeed int64, workerIndex int) int64 {
	h := uint64(globalSeed) ^ 0x9E3779B97F4A7C15
	h ^= uint64(workerIndex) * 0xBF58476D1CE4E5B9
	h = (h ^ (h >> 30)) * 0xBF58476D1CE4E5B9
	h = (h ^ (h >> 27)) * 0x94D049BB133111EB
	h ^= h >> 31
	return int64(h)
}
