package view

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/require"

	"lifegame/src/universe"
)

var blinker = universe.Template{Name: "blinker", Cells: [][]universe.Cell{{1, 1, 1}}}

//newHeadlessUI builds the viewer without a terminal, key handlers work on the universe directly
func newHeadlessUI(u *universe.Universe, templates ...universe.Template) *ConsoleUI {
	t := &ConsoleUI{
		au:        aurora.NewAurora(false),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		templates: templates,
		interval:  time.Millisecond,
	}
	t.Register(u)
	return t
}

func TestConsoleUICommands(t *testing.T) {
	u := universe.New(5, 5)
	ui := newHeadlessUI(u, blinker)

	require.NoError(t, ui.cmdTemplate(nil))
	require.Equal(t, 3, u.LiveCells())
	require.Equal(t, "blinker", ui.snapshot().template)

	require.NoError(t, ui.cmdNext(nil))
	require.NoError(t, ui.cmdNext(nil))
	require.Equal(t, 2, u.HistoryLen())

	require.NoError(t, ui.cmdPrev(nil))
	require.Equal(t, 1, u.HistoryLen())

	require.NoError(t, ui.cmdClearHistory(nil))
	require.False(t, u.HasHistory())
	require.NoError(t, ui.cmdPrev(nil), "stepping back without history is ignored")

	require.NoError(t, ui.cmdNext(nil))
	require.NoError(t, ui.cmdRandom(nil))
	require.False(t, u.HasHistory())

	require.NoError(t, ui.cmdNext(nil))
	require.NoError(t, ui.cmdClear(nil))
	require.Zero(t, u.LiveCells())
	require.False(t, u.HasHistory())
}

func TestConsoleUIRunStop(t *testing.T) {
	u := universe.New(8, 8)
	u.PlaceCentered(blinker)
	ui := newHeadlessUI(u)

	require.NoError(t, ui.cmdRunStop(nil))
	require.True(t, ui.snapshot().running)
	require.Eventually(t, func() bool {
		return ui.snapshot().status.Generation >= 3
	}, time.Second, time.Millisecond)

	require.NoError(t, ui.cmdRunStop(nil))
	require.False(t, ui.snapshot().running)
	gen := ui.snapshot().status.Generation
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, gen, ui.snapshot().status.Generation)
}

func TestConsoleUIRunStopsWhenDead(t *testing.T) {
	u := universe.New(6, 6)
	require.NoError(t, u.ToggleCell(2, 2))
	ui := newHeadlessUI(u)

	require.NoError(t, ui.cmdRunStop(nil))
	require.Eventually(t, func() bool {
		return !ui.snapshot().running
	}, time.Second, time.Millisecond)
	require.Equal(t, 1, ui.snapshot().status.Generation)
}

func TestRenderProp(t *testing.T) {
	ui := newHeadlessUI(universe.New(1, 1))
	require.Equal(t, " Dimension: 3 x 4", ui.renderProp("Dimension", "%v x %v", 3, 4))
}
