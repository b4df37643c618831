package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImprovement(t *testing.T) {
	tests := []struct {
		name       string
		manual     float64
		ai         float64
		percent    int
		class      Classification
		noBaseline bool
	}{
		{"saved energy", 100, 80, 20, Improved, false},
		{"regression", 80, 100, -25, Decreased, false},
		{"identical periods", 100, 100, 0, NoChange, false},
		{"sub-percent gain rounds to zero", 100, 99.7, 0, NoChange, false},
		{"half rounds away from zero", 8, 7, 13, Improved, false},
		{"negative half rounds away from zero", 8, 9, -13, Decreased, false},
		{"zero baseline", 0, 42, 0, NoChange, true},
		{"zero baseline and zero ai", 0, 0, 0, NoChange, true},
		{"negative inputs accepted", -100, -50, 50, Improved, false},
		{"nan input", math.NaN(), 10, 0, NoChange, false},
		{"infinite ai", 100, math.Inf(1), 0, NoChange, false},
		{"huge gain saturates", -1e-300, 1, math.MaxInt, Improved, false},
		{"huge loss saturates", 1e-300, 1, math.MinInt, Decreased, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Improvement(tt.manual, tt.ai)
			assert.Equal(t, tt.percent, got.Percent)
			assert.Equal(t, tt.class, got.Classification)
			assert.Equal(t, tt.noBaseline, got.NoBaseline)
		})
	}
}

func TestImprovementMatchesRoundedRatio(t *testing.T) {
	for _, manual := range []float64{1, 3.3, 57, 412.8, 1000} {
		for _, ai := range []float64{0, 0.5, 12, 57, 999.9, 2500} {
			want := int(math.Round((manual - ai) / manual * 100))
			assert.Equal(t, want, Improvement(manual, ai).Percent, "manual=%v ai=%v", manual, ai)
		}
	}
}

func TestClassificationLabels(t *testing.T) {
	assert.Equal(t, "improved", Improved.String())
	assert.Equal(t, "decreased", Decreased.String())
	assert.Equal(t, "no_change", NoChange.String())
	assert.Equal(t, "Reduced", Improved.Badge())
	assert.Equal(t, "", NoChange.Badge())
}

func TestClassificationTextRoundTrip(t *testing.T) {
	for _, c := range []Classification{Improved, Decreased, NoChange} {
		b, err := c.MarshalText()
		assert.NoError(t, err)
		var got Classification
		assert.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, c, got)
	}
	var c Classification
	assert.Error(t, c.UnmarshalText([]byte("better")))
}
