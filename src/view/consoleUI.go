package view

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifegame/src/universe"
)

const defInterval = time.Millisecond * 100

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

var _ Viewer = (*ConsoleUI)(nil)

//ConsoleUI is the interactive terminal host
//the universe is not safe for concurrent use, so every access goes through mu:
//key handlers run on the gocui main loop while the auto-run loop has its own goroutine
type ConsoleUI struct {
	mu        sync.Mutex
	u         *universe.Universe
	g         *gocui.Gui
	k         []keyBindings
	au        aurora.Aurora
	log       *slog.Logger
	templates []universe.Template
	template  int
	interval  time.Duration
	running   bool
	stopCh    chan struct{}

	liveFiller string
	deadFiller string
}

//snapshot is a copy of the universe state taken under the lock for rendering
type snapshot struct {
	area     [][]universe.Cell
	status   universe.Status
	options  universe.Options
	running  bool
	template string
}

//NewViewTerminal creates the interactive viewer
//templates are cycled by the 't' key and placed in the middle of the field
func NewViewTerminal(log *slog.Logger, colors bool, interval time.Duration, templates []universe.Template) (*ConsoleUI, error) {
	if interval <= 0 {
		interval = defInterval
	}
	au := aurora.NewAurora(colors)
	t := ConsoleUI{
		au:         au,
		log:        log,
		templates:  templates,
		interval:   interval,
		liveFiller: au.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t.g = g
	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next", t.cmdNext, ""},
		{'p', "P", "Previous", t.cmdPrev, ""},
		{gocui.KeySpace, "SPACE", "Run/Stop", t.cmdRunStop, ""},
		{'w', "W", "Random", t.cmdRandom, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'h', "H", "Forget history", t.cmdClearHistory, ""},
		{'t', "T", "Next template", t.cmdTemplate, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "field"},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u *universe.Universe) {
	t.mu.Lock()
	t.u = u
	t.mu.Unlock()
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		t.log.Error("terminal main loop", "err", err)
	}
	t.stop()
	t.g.Close()
}

//Refresh asks the main loop to redraw, the layout manager renders a fresh snapshot
func (t *ConsoleUI) Refresh() {
	if t.g == nil {
		return
	}
	t.g.Update(func(g *gocui.Gui) error { return nil })
}

func (t *ConsoleUI) snapshot() snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := snapshot{
		area:    t.u.Area(),
		status:  t.u.Status(),
		options: t.u.Options(),
		running: t.running,
	}
	if len(t.templates) > 0 {
		s.template = t.templates[t.template].Name
	}
	return s
}

//do runs f on the universe under the lock and refreshes the views
func (t *ConsoleUI) do(f func(u *universe.Universe)) {
	t.mu.Lock()
	f(t.u)
	t.mu.Unlock()
	t.Refresh()
}

func (t *ConsoleUI) renderField(v *gocui.View, s snapshot) {
	//the entire field is redrawing at once
	v.Clear()

	crop := false
	maxW, maxH := v.Size()
	if len(s.area) > maxH || s.options.Cols > maxW {
		crop = true
	}

	var b bytes.Buffer
	for i, l := range s.area {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == (maxH-1) {
			b.WriteString(t.au.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, e := range l {
			if j >= maxW {
				break
			}
			if e == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(v *gocui.View, s snapshot) {
	v.Clear()
	mode := t.au.Colorize("waiting", aurora.BlueFg).String()
	if s.running {
		mode = t.au.Colorize("running", aurora.CyanFg).String()
	}
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.status.Generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.status.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("History", "%v", s.status.History))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.status.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View, s snapshot) {
	v.Clear()
	history := "unbounded"
	if s.options.MaxHistory > 0 {
		history = fmt.Sprintf("%v steps", s.options.MaxHistory)
	}
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", s.options.Rows, s.options.Cols))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.interval))
	_, _ = fmt.Fprintln(v, t.renderProp("History", "%v", history))
	_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", s.options.Engine))
	if s.template != "" {
		_, _ = fmt.Fprintln(v, t.renderProp("Template", "%v", s.template))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.au.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game"); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	s := t.snapshot()

	v, err := t.panel(g, "configuration", "Configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2)
	if err != nil {
		return err
	}
	t.renderConfiguration(v, s)

	if v, err = t.panel(g, "status", "Status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		return err
	}
	t.renderStatus(v, s)

	if v, err = t.panel(g, "field", "Field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		return err
	}
	t.renderField(v, s)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.au.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

//panel creates or resizes a framed view
func (t *ConsoleUI) panel(g *gocui.Gui, name string, title string, x0, y0, x1, y1 int) (*gocui.View, error) {
	v, err := g.SetView(name, x0, y0, x1, y1)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return nil, err
		}
		v.Title = title
		v.Frame = true
	}
	return v, nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			text = text[:max(maxX, 0)]
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

//runLoop advances the universe every interval until stop is closed or every cell is dead
func (t *ConsoleUI) runLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			//stopped while waiting for the lock
			if !t.running || t.stopCh != stop {
				t.mu.Unlock()
				return
			}
			t.u.Next()
			live := t.u.LiveCells()
			t.mu.Unlock()
			if live == 0 {
				t.stop()
				t.Refresh()
				return
			}
			t.Refresh()
		}
	}
}

func (t *ConsoleUI) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.running = false
		close(t.stopCh)
	}
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNext(_ *gocui.View) error {
	t.do(func(u *universe.Universe) { u.Next() })
	return nil
}

func (t *ConsoleUI) cmdPrev(_ *gocui.View) error {
	t.do(func(u *universe.Universe) {
		if !u.Prev() {
			t.log.Debug("no history to step back to")
		}
	})
	return nil
}

func (t *ConsoleUI) cmdRunStop(_ *gocui.View) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.stop()
	} else {
		t.running = true
		t.stopCh = make(chan struct{})
		go t.runLoop(t.stopCh)
		t.mu.Unlock()
	}
	t.Refresh()
	return nil
}

//a fresh field starts without history
func (t *ConsoleUI) cmdRandom(_ *gocui.View) error {
	t.do(func(u *universe.Universe) {
		u.Random()
		u.ClearHistory()
	})
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.stop()
	t.do(func(u *universe.Universe) {
		u.Clear()
		u.ClearHistory()
	})
	return nil
}

func (t *ConsoleUI) cmdClearHistory(_ *gocui.View) error {
	t.do(func(u *universe.Universe) { u.ClearHistory() })
	return nil
}

func (t *ConsoleUI) cmdTemplate(_ *gocui.View) error {
	if len(t.templates) == 0 {
		return nil
	}
	t.do(func(u *universe.Universe) {
		t.template = (t.template + 1) % len(t.templates)
		u.Clear()
		u.PlaceCentered(t.templates[t.template])
		u.ClearHistory()
	})
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	t.do(func(u *universe.Universe) {
		if err := u.ToggleCell(cy+oy, cx+ox); err != nil {
			t.log.Debug("toggle ignored", "err", err)
		}
	})
	return nil
}
