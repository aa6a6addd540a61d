package state

// Window computes the 3-wide pagination window for classic paged results.
// Page 1 looks ahead two pages; any other page centers itself. Values are
// clamped to maxPage, and the active slot is always the structural middle
// of the window regardless of clamping.
func Window(currentPage, maxPage int) [3]int {
	if currentPage < 1 {
		currentPage = 1
	}
	if maxPage < 1 {
		maxPage = 1
	}

	var w [3]int
	if currentPage == 1 {
		w = [3]int{currentPage, currentPage + 1, currentPage + 2}
	} else {
		w = [3]int{currentPage - 1, currentPage, currentPage + 1}
	}
	for i := range w {
		if w[i] > maxPage {
			w[i] = maxPage
		}
	}
	return w
}

// ActivePage returns the page marked active in a window: the middle slot.
func ActivePage(w [3]int) int { return w[1] }

// Segment partitions items into consecutive chunks of size n; the last
// chunk may be shorter. A non-positive n yields a single chunk.
func Segment[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if n <= 0 {
		return [][]T{items}
	}
	chunks := make([][]T, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := start + n
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// Segmented pages through a pre-chunked array for grid views.
type Segmented[T any] struct {
	chunks [][]T
	index  int
}

// NewSegmented chunks items by pageSize and starts at page 0.
func NewSegmented[T any](items []T, pageSize int) *Segmented[T] {
	return &Segmented[T]{chunks: Segment(items, pageSize)}
}

// PageCount returns the number of chunks.
func (s *Segmented[T]) PageCount() int { return len(s.chunks) }

// PageIndex returns the current chunk index.
func (s *Segmented[T]) PageIndex() int { return s.index }

// Page returns the current chunk, or nil when there are no items.
func (s *Segmented[T]) Page() []T {
	if len(s.chunks) == 0 {
		return nil
	}
	return s.chunks[s.index]
}

// SetPage selects a chunk. An out-of-range index resets to 0.
func (s *Segmented[T]) SetPage(i int) {
	if i < 0 || i >= len(s.chunks) {
		s.index = 0
		return
	}
	s.index = i
}

// Next advances one page, clamped to the last chunk.
func (s *Segmented[T]) Next() {
	if s.index < len(s.chunks)-1 {
		s.index++
	}
}

// Prev steps back one page, clamped to the first chunk.
func (s *Segmented[T]) Prev() {
	if s.index > 0 {
		s.index--
	}
}

// VisibleRange returns the chunk indices shown around the current page:
// the previous, current and next index, clamped to bounds.
func (s *Segmented[T]) VisibleRange() []int {
	if len(s.chunks) == 0 {
		return nil
	}
	lo := s.index - 1
	if lo < 0 {
		lo = 0
	}
	hi := s.index + 1
	if hi > len(s.chunks)-1 {
		hi = len(s.chunks) - 1
	}
	r := make([]int, 0, 3)
	for i := lo; i <= hi; i++ {
		r = append(r, i)
	}
	return r
}

// ShowEllipsis reports whether the trailing ellipsis control should render:
// only when the forward range does not already reach the last page and the
// visible range holds fewer than three entries.
func (s *Segmented[T]) ShowEllipsis() bool {
	if len(s.chunks) == 0 {
		return false
	}
	reachesLast := s.index+1 >= len(s.chunks)-1
	return !reachesLast && len(s.VisibleRange()) < 3
}
