package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	assert.Equal(t, &Run{Format: "auto"}, got)
}

func TestRunMeasurer(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		r := &Run{}
		assert.Equal(t, 1, r.Measurer().StringWidth("α"))
	})

	t.Run("east asian", func(t *testing.T) {
		r := &Run{EastAsian: true}
		assert.Equal(t, 2, r.Measurer().StringWidth("α"))
	})
}
