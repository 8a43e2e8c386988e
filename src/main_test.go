package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegame/src/universe"
	"lifegame/src/view"
)

func TestFromCoordinates(t *testing.T) {
	cells := fromCoordinates([][]int{{0, 0}, {2, 1}})
	require.Equal(t, [][]universe.Cell{
		{1, 0, 0},
		{0, 0, 1},
	}, cells)
	require.Empty(t, fromCoordinates(nil))
}

func TestTemplatesLive(t *testing.T) {
	for _, name := range []string{"block", "blinker", "toad", "beacon", "glider", "lwss"} {
		u := universe.New(40, 40)
		u.PlaceCentered(templates[name])
		live := u.LiveCells()
		require.NotZero(t, live, name)
		for i := 0; i < 12; i++ {
			u.Next()
		}
		//still lifes, period 2 oscillators and spaceships all repeat their population every 4 generations
		assert.Equal(t, live, u.LiveCells(), name)
	}
}

func TestTemplatesPlace(t *testing.T) {
	for _, tmpl := range templateList() {
		u := universe.New(20, 20)
		u.PlaceCentered(tmpl)
		require.NotZero(t, u.LiveCells(), tmpl.Name)
	}
}

func TestTemplateNamesSorted(t *testing.T) {
	names := templateNames()
	require.Len(t, names, len(templates))
	require.IsIncreasing(t, names)
	require.Equal(t, names[0], templateList()[0].Name)
}

func TestValidate(t *testing.T) {
	eo := defaultEnvOptions()
	o := universe.DefaultUniverseOptions
	require.NoError(t, validate(eo, &o))

	o.Engine = "gpu"
	require.ErrorContains(t, validate(eo, &o), "unknown engine")
	o.Engine = universe.EngineMultithreaded
	require.NoError(t, validate(eo, &o))

	eo.template = "spaceship"
	require.ErrorContains(t, validate(eo, &o), "unknown template")
	eo.randomData = true
	require.NoError(t, validate(eo, &o))

	o.Rows = -1
	require.ErrorContains(t, validate(eo, &o), "negative dimension")
}

func TestSettle(t *testing.T) {
	eo := defaultEnvOptions()
	eo.template = "blinker"
	u := universe.New(5, 5)
	require.NoError(t, settle(u, eo))
	require.Equal(t, 3, u.LiveCells())

	eo.template = "nope"
	require.Error(t, settle(u, eo))

	eo.randomData = true
	eo.density = 1
	require.NoError(t, settle(u, eo))
	require.Equal(t, 25, u.LiveCells())
}

func TestRunBatch(t *testing.T) {
	var out, logs bytes.Buffer
	eo := defaultEnvOptions()
	eo.steps = 4
	eo.back = 3
	eo.every = 0
	eo.interval = 0

	u := universe.New(9, 9)
	u.PlaceCentered(templates["glider"])
	start := u.Grid()
	u.Next()
	afterOne := u.Grid()
	require.True(t, u.Prev())
	require.Equal(t, start, u.Grid())

	runBatch(u, view.NewConsoleOut(&out, newLogger("info", &logs), false, eo.every), eo)
	require.Equal(t, afterOne, u.Grid(), "four steps forward, three back")
	require.Equal(t, 1, u.HistoryLen())
	require.Contains(t, logs.String(), "msg=finished generation=1")
	require.Empty(t, out.String())
}

func TestRunBatchStopsWhenDead(t *testing.T) {
	var out, logs bytes.Buffer
	eo := defaultEnvOptions()
	eo.interval = 0
	u := universe.New(5, 5)
	require.NoError(t, u.ToggleCell(0, 0))

	runBatch(u, view.NewConsoleOut(&out, newLogger("info", &logs), false, 1), eo)
	require.Equal(t, 1, u.Status().Generation)
	require.True(t, strings.HasPrefix(out.String(), "generation 0\n"))
}

func TestNewLogger(t *testing.T) {
	var b bytes.Buffer
	log := newLogger("DEBUG", &b)
	log.Debug("visible")
	require.Contains(t, b.String(), "visible")

	b.Reset()
	log = newLogger("bogus", &b)
	log.Debug("hidden")
	log.Info("shown")
	require.NotContains(t, b.String(), "hidden")
	require.Contains(t, b.String(), "shown")
}

func TestLogWriter(t *testing.T) {
	eo := defaultEnvOptions()
	require.Equal(t, os.Stderr, logWriter(eo))
	eo.interactive = true
	require.Equal(t, io.Discard, logWriter(eo))
}
