package universe

import (
	"golang.org/x/sync/errgroup"
)

/*
	Multithreaded transition engine
	the field is splitted into bands of rows each of which is computed by individual goroutine
	all goroutines are joined before Next returns, so the universe stays synchronous for the caller
*/

const (
	DefWorkers          = 4 //default workers
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

//band describes the rows [y1, y2) calculated by one worker
type band struct {
	y1 int
	y2 int
}

func (u *Universe) initMultithreaded() {
	workers := u.options.Workers
	if workers <= 0 {
		workers = DefWorkers
	}
	bands, rowsPerWorker := splitRows(u.rows, workers)
	u.nextIteration = func(src []Cell, dst []Cell) int {
		return u.multithreadedNextIteration(bands, src, dst)
	}
	u.options.Engine = EngineMultithreaded
	u.options.Workers = workers
	u.details["engine"] = EngineMultithreaded
	u.details["Workers"] = len(bands)
	u.details["Rows per worker"] = rowsPerWorker
}

//splitRows divides rows into at most workers bands of at least DefMinRowsPerWorker rows
func splitRows(rows int, workers int) (bands []band, rowsPerWorker int) {
	rowsPerWorker = rows / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*workers < rows {
		rowsPerWorker++
	}
	bands = make([]band, 0, workers)
	for y1 := 0; y1 < rows; y1 += rowsPerWorker {
		bands = append(bands, band{y1, min(y1+rowsPerWorker, rows)})
	}
	return
}

//multithreadedNextIteration calculates the next generation, one goroutine per band
func (u *Universe) multithreadedNextIteration(bands []band, src []Cell, dst []Cell) int {
	if len(src) == 0 {
		return 0
	}
	live := make([]int, len(bands))
	var g errgroup.Group
	for i, b := range bands {
		i, b := i, b
		g.Go(func() error {
			live[i] = u.calcRows(src, dst, b.y1, b.y2)
			return nil
		})
	}
	g.Wait()
	liveCells := 0
	for _, l := range live {
		liveCells += l
	}
	return liveCells
}
