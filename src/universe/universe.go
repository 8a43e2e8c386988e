package universe

import (
	"errors"
	"time"
)

//Cell is the state of one grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Options represents the Universe's configurable options
type Options struct {
	Rows       int
	Cols       int
	MaxHistory int    //0 keeps every generation
	Seed       int64  //0 seeds from the clock
	Engine     string //EngineBase or EngineMultithreaded
	Workers    int    //multithreaded engine only
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	LiveCells     int
	History       int
	IterationTime time.Duration
	Details       map[string]interface{} //advanced details (engine specific)
}

//Template represents a caller-supplied pattern which can be placed into the universe
type Template struct {
	Name  string   //template name
	Descr string   //template descr
	Cells [][]Cell //rows of cells, top-left first
}

//Width returns the widest row of the template
func (t Template) Width() int {
	w := 0
	for _, r := range t.Cells {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

//Height returns the number of rows of the template
func (t Template) Height() int {
	return len(t.Cells)
}

//default options
const (
	DefRows       = 25
	DefCols       = 25
	DefMaxHistory = 100
	DefDensity    = 0.5
)

const (
	EngineBase          = "base"
	EngineMultithreaded = "multithreaded"
)

var (
	ErrOutOfRange   = errors.New("cell out of range")
	ErrSizeMismatch = errors.New("grid size mismatch")
)

var DefaultUniverseOptions = Options{
	Rows:       DefRows,
	Cols:       DefCols,
	MaxHistory: DefMaxHistory,
	Engine:     EngineBase,
	Workers:    DefWorkers,
}

//Engines lists the supported transition engines
func Engines() []string {
	return []string{EngineBase, EngineMultithreaded}
}
