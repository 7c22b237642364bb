package playback

import "testing"

func TestBarHeightsIdempotent(t *testing.T) {
	a := BarHeights(40, BaseHeights)
	b := BarHeights(40, BaseHeights)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bar %d differs between renders: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestBarHeightsActiveAndInactive(t *testing.T) {
	base := []float64{10, 20, 30, 40}
	got := BarHeights(50, base)
	want := []float64{10, 20, 9, 12}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("bar %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestActiveBarsBounds(t *testing.T) {
	if ActiveBars(30, 0) != 0 {
		t.Error("no bars should be active at 0%")
	}
	if ActiveBars(30, 100) != 30 {
		t.Error("all bars should be active at 100%")
	}
	if ActiveBars(7, 50) != 4 {
		t.Errorf("ActiveBars(7, 50) = %d, want 4", ActiveBars(7, 50))
	}
}
