package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		max        int
		want       [3]int
		wantActive int
	}{
		{name: "first page looks ahead", current: 1, max: 5, want: [3]int{1, 2, 3}, wantActive: 2},
		{name: "middle page centers", current: 3, max: 5, want: [3]int{2, 3, 4}, wantActive: 3},
		{name: "last page clamps", current: 5, max: 5, want: [3]int{4, 5, 5}, wantActive: 5},
		{name: "single page", current: 1, max: 1, want: [3]int{1, 1, 1}, wantActive: 1},
		{name: "two pages from first", current: 1, max: 2, want: [3]int{1, 2, 2}, wantActive: 2},
		{name: "current floored", current: 0, max: 5, want: [3]int{1, 2, 3}, wantActive: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window(tt.current, tt.max)
			assert.Equal(t, tt.want, w)
			// Active is the structural middle slot, not the current
			// page value.
			assert.Equal(t, tt.wantActive, ActivePage(w))
		})
	}
}

func TestSegment(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	chunks := Segment(items, 10)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 10)
	assert.Len(t, chunks[1], 10)
	assert.Len(t, chunks[2], 3)
	assert.Equal(t, 21, chunks[2][0])

	assert.Nil(t, Segment([]int{}, 10))
	assert.Len(t, Segment(items, 0), 1, "non-positive size keeps one chunk")
}

func TestSegmented(t *testing.T) {
	items := make([]string, 23)
	for i := range items {
		items[i] = string(rune('a' + i%26))
	}
	s := NewSegmented(items, 10)

	assert.Equal(t, 3, s.PageCount())
	assert.Equal(t, 0, s.PageIndex())
	assert.Len(t, s.Page(), 10)

	t.Run("out of range resets to zero", func(t *testing.T) {
		s.SetPage(2)
		assert.Equal(t, 2, s.PageIndex())
		s.SetPage(7)
		assert.Equal(t, 0, s.PageIndex())
		s.SetPage(-1)
		assert.Equal(t, 0, s.PageIndex())
	})

	t.Run("next and prev clamp", func(t *testing.T) {
		s.SetPage(0)
		s.Prev()
		assert.Equal(t, 0, s.PageIndex())
		s.Next()
		s.Next()
		s.Next()
		assert.Equal(t, 2, s.PageIndex(), "next clamps at last chunk")
		s.Prev()
		assert.Equal(t, 1, s.PageIndex())
	})

	t.Run("last chunk is short", func(t *testing.T) {
		s.SetPage(2)
		assert.Len(t, s.Page(), 3)
	})
}

func TestSegmentedEllipsis(t *testing.T) {
	t.Run("first of many pages", func(t *testing.T) {
		s := NewSegmented(make([]int, 50), 10) // 5 pages
		s.SetPage(0)
		assert.Equal(t, []int{0, 1}, s.VisibleRange())
		assert.True(t, s.ShowEllipsis(), "short visible range, last page not reached")
	})

	t.Run("interior page shows full range", func(t *testing.T) {
		s := NewSegmented(make([]int, 50), 10)
		s.SetPage(2)
		assert.Equal(t, []int{1, 2, 3}, s.VisibleRange())
		assert.False(t, s.ShowEllipsis())
	})

	t.Run("near the end", func(t *testing.T) {
		s := NewSegmented(make([]int, 50), 10)
		s.SetPage(3)
		assert.False(t, s.ShowEllipsis(), "forward range reaches the last page")
		s.SetPage(4)
		assert.False(t, s.ShowEllipsis())
	})

	t.Run("few pages never show it", func(t *testing.T) {
		s := NewSegmented(make([]int, 15), 10) // 2 pages
		s.SetPage(0)
		assert.False(t, s.ShowEllipsis())
	})

	t.Run("empty", func(t *testing.T) {
		s := NewSegmented([]int{}, 10)
		assert.False(t, s.ShowEllipsis())
		assert.Nil(t, s.Page())
	})
}
