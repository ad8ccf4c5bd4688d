package progress

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    float64
	}{
		{"zero progress", 0, 100, 0},
		{"half way", 50, 100, 0.5},
		{"exactly at target", 30, 30, 1},
		{"over target is capped", 150, 100, 1},
		{"zero target", 10, 0, 0},
		{"negative target", 10, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.current, tt.target); got != tt.want {
				t.Errorf("Ratio(%v, %v) = %v, want %v", tt.current, tt.target, got, tt.want)
			}
		})
	}
}
