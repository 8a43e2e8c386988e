package main

import (
	"sort"

	"lifegame/src/universe"
)

var (
	//block next to a small still-evolving tail, as [x,y] coordinates
	testSample = [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}

	templates = map[string]universe.Template{
		"sample": {Name: "sample", Descr: "block with a tail, settles after a few generations", Cells: fromCoordinates(testSample)},
		"block": {Name: "block", Descr: "2x2 still life", Cells: [][]universe.Cell{
			{1, 1},
			{1, 1},
		}},
		"blinker": {Name: "blinker", Descr: "period 2 oscillator", Cells: [][]universe.Cell{
			{1},
			{1},
			{1},
		}},
		"toad": {Name: "toad", Descr: "period 2 oscillator", Cells: [][]universe.Cell{
			{0, 1, 1, 1},
			{1, 1, 1, 0},
		}},
		"beacon": {Name: "beacon", Descr: "period 2 oscillator", Cells: [][]universe.Cell{
			{1, 1, 0, 0},
			{1, 1, 0, 0},
			{0, 0, 1, 1},
			{0, 0, 1, 1},
		}},
		"glider": {Name: "glider", Descr: "smallest spaceship, moves diagonally", Cells: [][]universe.Cell{
			{0, 1, 0},
			{0, 0, 1},
			{1, 1, 1},
		}},
		"lwss": {Name: "lwss", Descr: "lightweight spaceship, moves horizontally", Cells: [][]universe.Cell{
			{1, 0, 0, 1, 0},
			{0, 0, 0, 0, 1},
			{1, 0, 0, 0, 1},
			{0, 1, 1, 1, 1},
		}},
		"diehard": {Name: "diehard", Descr: "vanishes after 130 generations", Cells: [][]universe.Cell{
			{0, 0, 0, 0, 0, 0, 1, 0},
			{1, 1, 0, 0, 0, 0, 0, 0},
			{0, 1, 0, 0, 0, 1, 1, 1},
		}},
	}
)

//fromCoordinates converts [x,y] pairs into rows of cells
func fromCoordinates(vc [][]int) [][]universe.Cell {
	w, h := 0, 0
	for _, v := range vc {
		w = max(w, v[0]+1)
		h = max(h, v[1]+1)
	}
	cells := make([][]universe.Cell, h)
	for i := range cells {
		cells[i] = make([]universe.Cell, w)
	}
	for _, v := range vc {
		cells[v[1]][v[0]] = universe.Alive
	}
	return cells
}

func templateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//templateList returns the templates ordered by name
func templateList() []universe.Template {
	names := templateNames()
	list := make([]universe.Template, len(names))
	for i, n := range names {
		list[i] = templates[n]
	}
	return list
}
