package phoneme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPronunciationString(t *testing.T) {
	tests := []struct {
		name string
		p    Pronunciation
		want string
	}{
		{"empty", nil, ""},
		{"single", Of(PhonA), "a"},
		{"ordered", Of(PhonB, PhonI, PhonD, PhonA), "b i d a"},
		{"silent_only", Of(Silent), ""},
		{"silent_inside", Of(PhonA, Silent, PhonK), "a k"},
		{"silent_edges", Of(Silent, PhonA, Silent), "a"},
		{"placeholder", Of(PhonS, PhonA, PhonM, PhonHuit, PhonEh, PhonL), "s a m huit E l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, Of(PhonK, PhonS), Parse("k s"))
	assert.Equal(t, Of(PhonK, PhonS), Parse("  k\ts  "))
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("   "))
}

func TestConcat(t *testing.T) {
	got := Concat(Of(PhonM), nil, Of(PhonB, PhonI, PhonD, PhonA))
	assert.Equal(t, "m b i d a", got.String())
	assert.Empty(t, Concat())
}

func TestAudible(t *testing.T) {
	assert.Equal(t, Of(PhonA, PhonK), Of(Silent, PhonA, Silent, PhonK).Audible())
}

func TestKnown(t *testing.T) {
	for _, p := range Inventory() {
		assert.True(t, Known(p), "inventory unit %q should be known", p)
	}
	assert.False(t, Known(Silent))
	assert.False(t, Known("sh"))
	assert.Equal(t, []Phoneme{"x", "ts"}, Of(PhonA, "x", Silent, "ts").Unknown())
}
