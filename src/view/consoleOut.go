package view

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"

	"lifegame/src/universe"
)

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u *universe.Universe)
	Start()
}

var _ Viewer = (*ConsoleOut)(nil)

//ConsoleOut prints the universe to a plain writer, used in the batch mode
type ConsoleOut struct {
	u          *universe.Universe
	w          io.Writer
	log        *slog.Logger
	startTime  time.Time
	every      int
	liveFiller string
	deadFiller string
}

//NewConsoleOut creates the batch viewer
//the field is printed on every refresh when every is 1, on every n-th generation when it is n, never when it is 0
func NewConsoleOut(w io.Writer, log *slog.Logger, colors bool, every int) *ConsoleOut {
	au := aurora.NewAurora(colors)
	return &ConsoleOut{
		w:          w,
		log:        log,
		every:      every,
		liveFiller: au.Green("█").String(),
		deadFiller: "░",
	}
}

func (c *ConsoleOut) Register(u *universe.Universe) {
	c.u = u
	o := u.Options()
	c.log.Info("running configuration",
		"dimension", fmt.Sprintf("%v x %v", o.Rows, o.Cols),
		"history", o.MaxHistory,
		"engine", o.Engine)
	st := u.Status()
	for _, k := range sortedKeys(st.Details) {
		c.log.Debug("engine detail", "name", k, "value", st.Details[k])
	}
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	c.log.Info("simulation started", "live", c.u.LiveCells())
	c.printField()
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	c.log.Debug("generation",
		"generation", st.Generation,
		"live", st.LiveCells,
		"history", st.History,
		"took", st.IterationTime)
	if c.every > 0 && st.Generation%c.every == 0 {
		c.printField()
	}
}

//Finish reports the final state of the simulation
func (c *ConsoleOut) Finish() {
	st := c.u.Status()
	c.log.Info("finished",
		"generation", st.Generation,
		"live", st.LiveCells,
		"history", st.History,
		"total", time.Since(c.startTime).Round(time.Millisecond))
	c.printField()
}

func (c *ConsoleOut) printField() {
	if c.every == 0 {
		return
	}
	_, _ = fmt.Fprintf(c.w, "generation %d\n%s", c.u.Status().Generation, c.RenderField(c.u.Area()))
}

//RenderField draws the rows of cells, one line per row
func (c *ConsoleOut) RenderField(a [][]universe.Cell) string {
	var b strings.Builder
	for _, l := range a {
		for _, e := range l {
			if e == universe.Alive {
				b.WriteString(c.liveFiller)
			} else {
				b.WriteString(c.deadFiller)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sortedKeys(d map[string]interface{}) []string {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	return propNames
}
