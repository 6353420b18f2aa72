package pricing

import (
	"math"
	"testing"
)

func TestRoomsNeededMatchesCeil(t *testing.T) {
	for pax := 0; pax <= 50; pax++ {
		for capacity := 1; capacity <= 10; capacity++ {
			want := int(math.Ceil(float64(pax) / float64(capacity)))
			if got := RoomsNeeded(pax, capacity); got != want {
				t.Fatalf("RoomsNeeded(%d, %d) = %d, want %d", pax, capacity, got, want)
			}
		}
	}
}

func TestRoomsNeededExamples(t *testing.T) {
	tests := []struct {
		pax, capacity, want int
	}{
		{5, 2, 3},
		{0, 2, 0},
		{4, 4, 1},
		{1, 3, 1},
		{3, 0, 3},  // bad capacity counts as 1
		{2, -4, 2}, // likewise
		{-1, 2, 0},
	}
	for _, tt := range tests {
		if got := RoomsNeeded(tt.pax, tt.capacity); got != tt.want {
			t.Errorf("RoomsNeeded(%d, %d) = %d, want %d", tt.pax, tt.capacity, got, tt.want)
		}
	}
}
