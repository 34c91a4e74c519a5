package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentWidthsOf(cols []ResolvedColumn) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c.Width
	}
	return out
}

func TestResolveTooManyColumns(t *testing.T) {
	_, err := Resolve(100, Widths(1, 2), []int{5})
	require.Error(t, err)

	var tooMany *TooManyColumnsError
	require.True(t, errors.As(err, &tooMany))
	assert.Equal(t, 2, tooMany.Defined)
	assert.Equal(t, 1, tooMany.Found)
	assert.Equal(t, "2 columns defined, but only 1 columns found", err.Error())
}

func TestResolveShare(t *testing.T) {
	t.Run("remainder goes to earlier columns", func(t *testing.T) {
		// 10 left for content after 3 x 2 padding
		cols, err := Resolve(16, nil, []int{50, 50, 50})
		require.NoError(t, err)
		assert.Equal(t, []int{4, 3, 3}, contentWidthsOf(cols))
		for _, c := range cols {
			assert.Equal(t, 1, c.PaddingLeft)
			assert.Equal(t, 1, c.PaddingRight)
		}
	})

	t.Run("many columns split evenly", func(t *testing.T) {
		cols, err := Resolve(24, nil, []int{9, 9, 9, 9, 9, 9, 9})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 2, 1, 1, 1, 1}, contentWidthsOf(cols))
	})

	t.Run("shares whatever fixed columns leave", func(t *testing.T) {
		cols, err := Resolve(40, Widths(10), []int{30, 30})
		require.NoError(t, err)
		// 40 - 12 (fixed + padding) - 2 (share padding)
		assert.Equal(t, []int{10, 26}, contentWidthsOf(cols))
	})
}

func TestResolvePercent(t *testing.T) {
	t.Run("halves", func(t *testing.T) {
		cols, err := Resolve(100, Widths("50%", "50%"), []int{200, 200})
		require.NoError(t, err)
		assert.Equal(t, []int{48, 48}, contentWidthsOf(cols))
		assert.Equal(t, 50, cols[0].TotalWidth())
		assert.Equal(t, 50, cols[1].TotalWidth())
	})

	t.Run("uneven split", func(t *testing.T) {
		cols, err := Resolve(100, Widths("70%", "30%"), []int{5, 5})
		require.NoError(t, err)
		assert.Equal(t, []int{68, 28}, contentWidthsOf(cols))
	})
}

func TestResolveContentFit(t *testing.T) {
	t.Run("fits content", func(t *testing.T) {
		cols, err := Resolve(100, Widths(ContentWidth, "auto"), []int{12, 500})
		require.NoError(t, err)
		assert.Equal(t, 12, cols[0].Width)
		assert.Equal(t, 100-14-2, cols[1].Width)
	})

	t.Run("clamped to available width", func(t *testing.T) {
		cols, err := Resolve(100, Widths(ContentWidth), []int{150})
		require.NoError(t, err)
		assert.Equal(t, 100, cols[0].Width)
		assert.Equal(t, 0, cols[0].PaddingLeft)
		assert.Equal(t, 0, cols[0].PaddingRight)
	})

	t.Run("empty column stays empty", func(t *testing.T) {
		cols, err := Resolve(100, Widths(ContentWidth), []int{0})
		require.NoError(t, err)
		assert.Equal(t, 0, cols[0].Width)
		assert.Equal(t, 2, cols[0].TotalWidth())
	})
}

func TestResolveUnbounded(t *testing.T) {
	cols, err := Resolve(Unbounded, Widths(5, "50%", ContentWidth, "auto"), []int{40, 30, 20, 10})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 30, 20, 10}, contentWidthsOf(cols))
	for _, c := range cols {
		assert.Equal(t, -1, c.Allotment)
	}
}

func TestResolveShrink(t *testing.T) {
	t.Run("equal padding split evenly", func(t *testing.T) {
		cols, err := Resolve(100, []Column{{Width: 1, Padding: &Padding{Left: 200, Right: 200}}}, []int{1})
		require.NoError(t, err)
		c := cols[0]
		assert.Equal(t, 1, c.Width)
		assert.Equal(t, 50, c.PaddingLeft)
		assert.Equal(t, 49, c.PaddingRight)
		assert.Equal(t, 100, c.TotalWidth())
	})

	t.Run("larger padding absorbs more", func(t *testing.T) {
		cols, err := Resolve(100, []Column{{Width: 1, Padding: &Padding{Left: 200, Right: 100}}}, []int{1})
		require.NoError(t, err)
		c := cols[0]
		assert.Equal(t, 1, c.Width)
		assert.Equal(t, 66, c.PaddingLeft)
		assert.Equal(t, 33, c.PaddingRight)
	})

	t.Run("padding goes before content", func(t *testing.T) {
		cols, err := Resolve(100, []Column{{Width: ContentWidth, Padding: &Padding{Left: 200, Right: 200}}}, []int{150})
		require.NoError(t, err)
		c := cols[0]
		assert.Equal(t, 100, c.Width)
		assert.Equal(t, 0, c.PaddingLeft+c.PaddingRight)
	})

	t.Run("share with no room left collapses", func(t *testing.T) {
		cols, err := Resolve(50, Widths(100, "auto"), []int{10, 10})
		require.NoError(t, err)
		assert.Equal(t, 50, cols[0].Width)
		assert.Equal(t, 0, cols[0].PaddingLeft+cols[0].PaddingRight)
		assert.Equal(t, 0, cols[1].Width)
		assert.Equal(t, 0, cols[1].TotalWidth())
	})

	t.Run("zero available width", func(t *testing.T) {
		cols, err := Resolve(0, nil, []int{5, 5})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0}, contentWidthsOf(cols))
		for _, c := range cols {
			assert.Equal(t, 0, c.TotalWidth())
		}
	})

	t.Run("explicit zero width is kept", func(t *testing.T) {
		cols, err := Resolve(100, Widths(0), []int{5})
		require.NoError(t, err)
		assert.Equal(t, 0, cols[0].Width)
	})
}

func TestResolveNarrowShares(t *testing.T) {
	tests := []struct {
		available int
		want      []int
		padding   int
	}{
		{available: 0, want: []int{0, 0}},
		{available: 3, want: []int{2, 1}},
		{available: 4, want: []int{2, 2}},
		{available: 5, want: []int{3, 2}},
		{available: 6, want: []int{1, 1}, padding: 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("width %d", tt.available), func(t *testing.T) {
			cols, err := Resolve(tt.available, nil, []int{50, 50})
			require.NoError(t, err)
			assert.Equal(t, tt.want, contentWidthsOf(cols))

			total := 0
			for _, c := range cols {
				assert.Equal(t, tt.padding, c.PaddingLeft+c.PaddingRight)
				assert.LessOrEqual(t, c.TotalWidth(), c.Allotment)
				total += c.TotalWidth()
			}
			assert.Equal(t, tt.available, total)
		})
	}
}

func TestResolveCarriesColumnSettings(t *testing.T) {
	identity := func(s string) string { return s }
	cols, err := Resolve(40, []Column{{
		Width:      10,
		Align:      AlignCenter,
		Padding:    &Padding{Left: 2, Right: -3, Top: 1, Bottom: 2},
		Preprocess: identity,
	}, {Align: "diagonal"}}, []int{5, 5})
	require.NoError(t, err)

	assert.Equal(t, AlignCenter, cols[0].Align)
	assert.Equal(t, 2, cols[0].PaddingLeft)
	assert.Equal(t, 0, cols[0].PaddingRight)
	assert.Equal(t, 1, cols[0].PaddingTop)
	assert.Equal(t, 2, cols[0].PaddingBottom)
	assert.NotNil(t, cols[0].Preprocess)
	assert.Equal(t, AlignLeft, cols[1].Align)
	assert.Equal(t, Fixed, cols[0].Kind)
	assert.Equal(t, Share, cols[1].Kind)
}
