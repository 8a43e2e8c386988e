package universe

import (
	"fmt"
	"math/rand/v2"
	"time"
)

//Universe is the Game of Life engine
//it owns the toroidal grid of the current generation and the stack of previous generations
//the engine holds no locks: callers must serialize access to one Universe
type Universe struct {
	options       Options
	rows          int
	cols          int
	current       []Cell
	history       history
	rng           *rand.Rand
	generation    int
	liveCells     int
	liveKnown     bool //liveCells matches current
	iterationTime time.Duration
	details       map[string]interface{}
	nextIteration func(src []Cell, dst []Cell) (liveCells int)
}

//New creates the Universe with default options and the given dimensions
func New(rows int, cols int) *Universe {
	o := DefaultUniverseOptions
	o.Rows = rows
	o.Cols = cols
	return NewUniverse(&o)
}

//NewUniverse creates the Universe instance, all cells are dead and the history is empty
//zero (or negative) dimensions produce an empty universe where every operation is a no-op
func NewUniverse(o *Options) *Universe {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := Universe{
		options: *o,
		rows:    max(o.Rows, 0),
		cols:    max(o.Cols, 0),
		details: map[string]interface{}{},
		//all cells start dead
		liveKnown: true,
	}
	if u.rows == 0 || u.cols == 0 {
		u.rows, u.cols = 0, 0
	}
	u.options.Rows, u.options.Cols = u.rows, u.cols
	u.current = make([]Cell, u.rows*u.cols)
	u.history = history{limit: max(o.MaxHistory, 0)}
	u.Seed(o.Seed)

	switch o.Engine {
	case EngineMultithreaded:
		u.initMultithreaded()
	default:
		//nextIteration can be replaced by another engine
		u.nextIteration = u._nextIteration
		u.options.Engine = EngineBase
		u.details["engine"] = EngineBase
	}
	return &u
}

//Seed resets the random source used by Random and RandomDensity
//seed 0 seeds from the clock
func (u *Universe) Seed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u.rng = rand.New(rand.NewPCG(uint64(seed), 0))
}

//Rows returns the number of rows
func (u *Universe) Rows() int { return u.rows }

//Cols returns the number of columns
func (u *Universe) Cols() int { return u.cols }

//Options returns the universe configuration
func (u *Universe) Options() Options { return u.options }

//Next advances the universe by one generation
//the current generation is pushed to the history before being replaced
func (u *Universe) Next() {
	start := time.Now()
	next := u.history.buffer(len(u.current))
	live := u.nextIteration(u.current, next)
	u.history.push(u.current)
	u.current = next
	u.liveCells, u.liveKnown = live, true
	u.generation++
	u.iterationTime = time.Since(start)
}

//Prev restores the previous generation from the history
//returns false and does nothing when the history is empty
func (u *Universe) Prev() bool {
	g, ok := u.history.pop()
	if !ok {
		return false
	}
	u.history.recycle(u.current)
	u.current = g
	u.liveKnown = false
	u.generation--
	return true
}

//HasHistory reports whether Prev would have any effect
func (u *Universe) HasHistory() bool {
	return u.history.len() > 0
}

//HistoryLen returns the number of stored previous generations
func (u *Universe) HistoryLen() int {
	return u.history.len()
}

//ClearHistory forgets all previous generations, the current one is kept
func (u *Universe) ClearHistory() {
	u.history.clear()
}

//ToggleCell inverses the cell state at row, col
func (u *Universe) ToggleCell(row int, col int) error {
	if !u.inside(row, col) {
		return fmt.Errorf("toggle (%d,%d) in %dx%d universe: %w", row, col, u.rows, u.cols, ErrOutOfRange)
	}
	u.current[row*u.cols+col] ^= Alive
	u.liveKnown = false
	return nil
}

//Random populates every cell with a 50% chance of being alive
func (u *Universe) Random() {
	u.RandomDensity(DefDensity)
}

//RandomDensity populates every cell with probability p of being alive
func (u *Universe) RandomDensity(p float64) {
	p = min(max(p, 0), 1)
	for i := range u.current {
		if u.rng.Float64() < p {
			u.current[i] = Alive
		} else {
			u.current[i] = Dead
		}
	}
	u.liveKnown = false
}

//Clear kills all cells
func (u *Universe) Clear() {
	clear(u.current)
	u.liveCells, u.liveKnown = 0, true
}

//Load replaces the current generation with a copy of cells (row-major, rows*cols long)
//any non-zero value is stored as Alive
func (u *Universe) Load(cells []Cell) error {
	if len(cells) != len(u.current) {
		return fmt.Errorf("load %d cells into %dx%d universe: %w", len(cells), u.rows, u.cols, ErrSizeMismatch)
	}
	for i, c := range cells {
		if c != Dead {
			u.current[i] = Alive
		} else {
			u.current[i] = Dead
		}
	}
	u.liveKnown = false
	return nil
}

//Place stamps the template with its top-left corner at row, col
//the template wraps around the edges and overwrites the covered cells
func (u *Universe) Place(t Template, row int, col int) {
	if len(u.current) == 0 {
		return
	}
	for i, line := range t.Cells {
		r := wrap(row+i, u.rows)
		for j, c := range line {
			if c != Dead {
				c = Alive
			}
			u.current[r*u.cols+wrap(col+j, u.cols)] = c
		}
	}
	u.liveKnown = false
}

//PlaceCentered stamps the template in the middle of the universe
func (u *Universe) PlaceCentered(t Template) {
	u.Place(t, (u.rows-t.Height())/2, (u.cols-t.Width())/2)
}

//At returns the cell state at row, col, out of range cells are dead
func (u *Universe) At(row int, col int) Cell {
	if !u.inside(row, col) {
		return Dead
	}
	return u.current[row*u.cols+col]
}

//Grid returns a copy of the current generation, row-major, rows*cols cells
func (u *Universe) Grid() []Cell {
	g := make([]Cell, len(u.current))
	copy(g, u.current)
	return g
}

//Area returns a copy of the current generation as a sequence of rows
func (u *Universe) Area() [][]Cell {
	b := u.Grid()
	area := make([][]Cell, u.rows)
	for i := range area {
		start := u.cols * i
		area[i] = b[start : start+u.cols : start+u.cols]
	}
	return area
}

//LiveCells returns the count of live cells, counted again only after a mutation
func (u *Universe) LiveCells() int {
	if u.liveKnown {
		return u.liveCells
	}
	liveCells := 0
	for _, c := range u.current {
		liveCells += int(c)
	}
	u.liveCells, u.liveKnown = liveCells, true
	return liveCells
}

//Status returns current universe status represented by Status struct
func (u *Universe) Status() Status {
	details := make(map[string]interface{}, len(u.details))
	for k, v := range u.details {
		details[k] = v
	}
	return Status{
		Generation:    u.generation,
		LiveCells:     u.LiveCells(),
		History:       u.history.len(),
		IterationTime: u.iterationTime,
		Details:       details,
	}
}

//Close releases the grid and the history, the universe becomes empty
func (u *Universe) Close() {
	u.history.clear()
	u.history.spare = nil
	u.current = nil
	u.rows, u.cols = 0, 0
	u.liveCells, u.liveKnown = 0, true
	//the engine bands were split for the old dimensions
	u.nextIteration = u._nextIteration
}

//_nextIteration does one simulation cycle on a single goroutine
func (u *Universe) _nextIteration(src []Cell, dst []Cell) int {
	return u.calcRows(src, dst, 0, u.rows)
}

//calcRows writes the next state of rows [y1, y2) of src into dst
func (u *Universe) calcRows(src []Cell, dst []Cell, y1 int, y2 int) (liveCells int) {
	rows, cols := u.rows, u.cols
	for y := y1; y < y2; y++ {
		up := (y + rows - 1) % rows * cols
		mid := y * cols
		down := (y + 1) % rows * cols
		for x := 0; x < cols; x++ {
			left := (x + cols - 1) % cols
			right := (x + 1) % cols
			n := src[up+left] + src[up+x] + src[up+right] +
				src[mid+left] + src[mid+right] +
				src[down+left] + src[down+x] + src[down+right]
			next := cellNextState(src[mid+x], n)
			dst[mid+x] = next
			liveCells += int(next)
		}
	}
	return
}

//cellNextState applies the B3/S23 rule to a cell with n live neighbours
func cellNextState(c Cell, n Cell) Cell {
	if n == 3 || (n == 2 && c == Alive) {
		return Alive
	}
	return Dead
}

func (u *Universe) inside(row int, col int) bool {
	return row >= 0 && col >= 0 && row < u.rows && col < u.cols
}

func wrap(i int, n int) int {
	return (i%n + n) % n
}
