package random

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRandom_Seeded(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Byte(), b.Byte())
	}
}

func TestSequence(t *testing.T) {
	tests := []struct {
		name   string
		values []byte
		want   []byte
	}{
		{"empty", nil, []byte{0, 0, 0}},
		{"single", []byte{0xAB}, []byte{0xAB, 0xAB, 0xAB}},
		{"cycle", []byte{1, 2}, []byte{1, 2, 1, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSequence(tt.values...)
			got := make([]byte, 0, len(tt.want))
			for range tt.want {
				got = append(got, seq.Byte())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
