package view

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegame/src/universe"
)

func newTestOut(every int) (*ConsoleOut, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewConsoleOut(&out, log, false, every), &out, &logs
}

func TestRenderField(t *testing.T) {
	c, _, _ := newTestOut(1)
	field := c.RenderField([][]universe.Cell{
		{0, 1, 0},
		{1, 1, 1},
	})
	require.Equal(t, "░█░\n███\n", field)
	require.Empty(t, c.RenderField(nil))
}

func TestConsoleOutLifecycle(t *testing.T) {
	c, out, logs := newTestOut(2)
	u := universe.New(3, 3)
	require.NoError(t, u.ToggleCell(1, 1))

	c.Register(u)
	c.Start()
	u.Next()
	c.Refresh()
	u.Next()
	c.Refresh()
	c.Finish()

	printed := out.String()
	assert.Equal(t, 3, strings.Count(printed, "generation "), "start, generation 2 and finish")
	assert.Contains(t, printed, "generation 0\n░░░\n░█░\n░░░\n")
	assert.Contains(t, printed, "generation 2\n░░░\n░░░\n░░░\n")

	l := logs.String()
	assert.Contains(t, l, "running configuration")
	assert.Contains(t, l, `dimension="3 x 3"`)
	assert.Contains(t, l, "engine=base")
	assert.Contains(t, l, "msg=generation generation=1")
	assert.Contains(t, l, "msg=finished generation=2 live=0 history=2")
}

func TestConsoleOutQuiet(t *testing.T) {
	c, out, _ := newTestOut(0)
	u := universe.New(4, 4)
	c.Register(u)
	c.Start()
	u.Next()
	c.Refresh()
	c.Finish()
	require.Empty(t, out.String())
}
