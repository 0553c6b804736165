package math

import (
	stdmath "math"
	"testing"

	"github.com/gemmflux/gemmflux/hwy"
)

func TestLaneWise(t *testing.T) {
	input := []float32{-100, -3, -0.5, 0, 0.5, 3, 100}
	tests := []struct {
		name string
		fn   func(hwy.Vec[float32]) hwy.Vec[float32]
		ref  func(float64) float64
	}{
		{"Exp", Exp[float32], stdmath.Exp},
		{"Tanh", Tanh[float32], stdmath.Tanh},
		{"Erf", Erf[float32], stdmath.Erf},
		{"Sigmoid", Sigmoid[float32], func(x float64) float64 { return 1 / (1 + stdmath.Exp(-x)) }},
	}
	lanes := hwy.MaxLanes[float32]()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for start := 0; start < len(input); start += lanes {
				v := tt.fn(hwy.Load(input[start:]))
				for i, got := range v.Data() {
					x := float64(input[start+i])
					want := float32(tt.ref(x))
					if stdmath.IsInf(float64(want), 1) {
						if !stdmath.IsInf(float64(got), 1) {
							t.Errorf("%s(%v): got %v, want +Inf", tt.name, x, got)
						}
						continue
					}
					if diff := stdmath.Abs(float64(got - want)); diff > 1e-6*stdmath.Max(1, stdmath.Abs(float64(want))) {
						t.Errorf("%s(%v): got %v, want %v", tt.name, x, got, want)
					}
				}
			}
		})
	}
}

func TestSigmoidSaturates(t *testing.T) {
	v := Sigmoid(hwy.Load([]float64{-1000, 1000}))
	got := v.Data()
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("Sigmoid saturation: got %v, want [0 1]", got)
	}
	if stdmath.IsNaN(got[0]) {
		t.Error("Sigmoid(-1000) is NaN")
	}
}
