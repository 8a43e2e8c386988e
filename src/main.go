package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"lifegame/src/universe"
	"lifegame/src/view"
)

const (
	DefInterval = time.Millisecond * 100
	DefSteps    = 100
	DefTemplate = "sample"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	density     float64
	template    string
	steps       int
	back        int
	every       int
	interval    time.Duration
	logLevel    string
	noColor     bool
}

func main() {
	eo, uo := initOptions()
	log := newLogger(eo.logLevel, logWriter(eo))

	u := universe.NewUniverse(uo)
	defer u.Close()

	if err := settle(u, eo); err != nil {
		log.Error("settle", "err", err)
		os.Exit(1)
	}

	if eo.interactive {
		v, err := view.NewViewTerminal(log, !eo.noColor, eo.interval, templateList())
		if err != nil {
			log.Error("interactive mode", "err", err)
			os.Exit(1)
		}
		v.Register(u)
		v.Start()
		return
	}

	runBatch(u, view.NewConsoleOut(os.Stdout, log, !eo.noColor, eo.every), eo)
}

//settle populates the universe with random data or with the chosen template
func settle(u *universe.Universe, eo *EnvOptions) error {
	if eo.randomData {
		u.RandomDensity(eo.density)
		return nil
	}
	tmpl, ok := templates[eo.template]
	if !ok {
		return fmt.Errorf("unknown template %q", eo.template)
	}
	u.PlaceCentered(tmpl)
	return nil
}

//runBatch advances the universe eo.steps times (stopping early when every cell is dead)
//then steps back eo.back generations through the history
func runBatch(u *universe.Universe, out *view.ConsoleOut, eo *EnvOptions) {
	out.Register(u)
	out.Start()
	for i := 0; i < eo.steps; i++ {
		u.Next()
		out.Refresh()
		if u.LiveCells() == 0 {
			break
		}
		if eo.interval > 0 {
			time.Sleep(eo.interval)
		}
	}
	for i := 0; i < eo.back && u.Prev(); i++ {
		out.Refresh()
	}
	out.Finish()
}

//logWriter returns where the log goes, gocui owns the terminal in the interactive mode
func logWriter(eo *EnvOptions) io.Writer {
	if eo.interactive {
		return io.Discard
	}
	return os.Stderr
}

//newLogger creates a leveled text logger, unknown levels default to info
func newLogger(level string, w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultEnvOptions() *EnvOptions {
	return &EnvOptions{
		density:  universe.DefDensity,
		template: DefTemplate,
		steps:    DefSteps,
		every:    1,
		interval: DefInterval,
		logLevel: "info",
	}
}

//validate checks the options which flaggy can not check by itself
func validate(eo *EnvOptions, uo *universe.Options) error {
	known := false
	for _, e := range universe.Engines() {
		known = known || e == uo.Engine
	}
	if !known {
		return fmt.Errorf("unknown engine %q", uo.Engine)
	}
	if _, ok := templates[eo.template]; !ok && !eo.randomData {
		return fmt.Errorf("unknown template %q", eo.template)
	}
	if uo.Rows < 0 || uo.Cols < 0 {
		return fmt.Errorf("negative dimension %v x %v", uo.Rows, uo.Cols)
	}
	return nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultUniverseOptions
	uo = &o
	eo = defaultEnvOptions()

	flaggy.SetName("lifegame")
	flaggy.SetDescription("Conway's Game of Life on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Rows, "r", "rows", "Number of rows of the field")
	flaggy.Int(&uo.Cols, "c", "cols", "Number of columns of the field")
	flaggy.Int(&uo.MaxHistory, "H", "history", "Generations kept for stepping back, 0 keeps all")
	flaggy.Int64(&uo.Seed, "S", "seed", "Seed of the random data, 0 seeds from the clock")
	flaggy.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.Engines(), "|")+"]")
	flaggy.Int(&uo.Workers, "w", "workers", "Workers of the multithreaded engine")
	flaggy.Int(&eo.steps, "s", "steps", "Generations to simulate in the batch mode")
	flaggy.Int(&eo.back, "b", "back", "Generations to step back after the simulation in the batch mode")
	flaggy.Int(&eo.every, "p", "print", "Print the field every n generations in the batch mode, 0 never")
	flaggy.Duration(&eo.interval, "i", "interval", "Simulation speed (interval between the steps), for example 150ms")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "R", "random", "Settle with random data")
	flaggy.Float64(&eo.density, "d", "density", "Share of live cells of the random data")
	flaggy.String(&eo.template, "t", "template", "Template to settle with ["+strings.Join(templateNames(), "|")+"]")
	flaggy.String(&eo.logLevel, "l", "log-level", "Log level [debug|info|warn|error]")
	flaggy.Bool(&eo.noColor, "", "no-color", "Disable colored output")

	flaggy.Parse()

	if err := validate(eo, uo); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}
