package universe

//history is the LIFO stack of previous generations
//with a positive limit it works as a ring: pushing onto a full stack evicts the oldest generation
//buffers dropped from the stack are kept as a spare and reused for the next generation
type history struct {
	limit   int
	entries [][]Cell
	head    int //index of the oldest entry (ring mode)
	n       int
	spare   []Cell
}

func (h *history) len() int {
	return h.n
}

func (h *history) push(g []Cell) {
	if h.limit <= 0 {
		h.entries = append(h.entries, g)
		h.n++
		return
	}
	if h.entries == nil {
		h.entries = make([][]Cell, h.limit)
	}
	if h.n == h.limit {
		h.recycle(h.entries[h.head])
		h.entries[h.head] = g
		h.head = (h.head + 1) % h.limit
		return
	}
	h.entries[(h.head+h.n)%h.limit] = g
	h.n++
}

func (h *history) pop() ([]Cell, bool) {
	if h.n == 0 {
		return nil, false
	}
	i := h.n - 1
	if h.limit > 0 {
		i = (h.head + h.n - 1) % h.limit
	}
	g := h.entries[i]
	h.entries[i] = nil
	h.n--
	if h.limit <= 0 {
		h.entries = h.entries[:h.n]
	}
	return g, true
}

func (h *history) clear() {
	if h.limit <= 0 {
		h.entries = nil
	} else {
		clear(h.entries)
	}
	h.head, h.n = 0, 0
}

func (h *history) recycle(g []Cell) {
	h.spare = g
}

//buffer returns a buffer of the given size for the next generation, its content is undefined
func (h *history) buffer(size int) []Cell {
	if b := h.spare; b != nil && cap(b) >= size {
		h.spare = nil
		return b[:size]
	}
	return make([]Cell, size)
}
