package playback

// BaseHeights are the visualization bar heights in percent.
var BaseHeights = []float64{30, 55, 40, 70, 50, 85, 45, 60, 35, 75, 55, 40, 65, 80, 45, 55, 70, 35, 60, 50, 75, 40, 65, 30, 80, 55, 45, 70, 50, 60}

// InactiveScale is the fraction of its base height an inactive bar keeps.
const InactiveScale = 0.3

// BarActive reports whether bar i of n is lit at the given progress.
func BarActive(i, n int, progress float64) bool {
	return float64(i) < progress/100*float64(n)
}

// ActiveBars counts the lit bars of n at the given progress.
func ActiveBars(n int, progress float64) int {
	count := 0
	for i := 0; i < n; i++ {
		if BarActive(i, n, progress) {
			count++
		}
	}
	return count
}

// BarHeights returns the displayed height of each bar. It depends only on
// its arguments, so repeated renders agree.
func BarHeights(progress float64, base []float64) []float64 {
	out := make([]float64, len(base))
	for i, h := range base {
		if BarActive(i, len(base), progress) {
			out[i] = h
		} else {
			out[i] = h * InactiveScale
		}
	}
	return out
}
