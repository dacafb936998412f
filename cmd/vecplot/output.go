package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/viant/vecplot/neighbor"
	"github.com/viant/vecplot/plot"
	"github.com/viant/vecplot/store"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case formatTable, formatCSV, formatJSON, formatYAML:
		return true
	}
	return false
}

// printer writes tabular results in the selected format.
type printer struct {
	out    io.Writer
	format string
}

func (p printer) print(header []string, rows [][]string, v any) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatCSV:
		w := csv.NewWriter(p.out)
		if err := w.Write(header); err != nil {
			return err
		}
		if err := w.WriteAll(rows); err != nil {
			return err
		}
		return w.Error()
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	writeRow(tw, header)
	for _, row := range rows {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// Render implements plot.Sink by printing every point.
func (p printer) Render(points []plot.Point) error {
	rows := make([][]string, len(points))
	for i, pt := range points {
		rows[i] = []string{strconv.Itoa(pt.Index), pt.Name, formatFloat(pt.Position.X), formatFloat(pt.Position.Y)}
	}
	return p.print([]string{"index", "name", "x", "y"}, rows, points)
}

// Highlight implements plot.Sink. Neighbour commands print their results
// with similarities through printNeighbors instead.
func (p printer) Highlight([]plot.Point) error { return nil }

type neighborRow struct {
	Rank       int     `json:"rank" yaml:"rank"`
	Index      int     `json:"index" yaml:"index"`
	Name       string  `json:"name" yaml:"name"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

func (p printer) printNeighbors(ns []neighbor.Neighbor) error {
	items := make([]neighborRow, len(ns))
	rows := make([][]string, len(ns))
	for i, n := range ns {
		items[i] = neighborRow{Rank: i + 1, Index: n.Token.Index(), Name: n.Token.Name(), Similarity: n.Similarity}
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(n.Token.Index()), n.Token.Name(), formatFloat(n.Similarity)}
	}
	return p.print([]string{"rank", "index", "name", "similarity"}, rows, items)
}

func (p printer) printDatasets(list []store.Dataset) error {
	if list == nil {
		list = []store.Dataset{}
	}
	rows := make([][]string, len(list))
	for i, ds := range list {
		rows[i] = []string{ds.ID, ds.Name, strconv.Itoa(ds.Dim), strconv.Itoa(ds.Size), ds.CreatedAt.Format(time.RFC3339)}
	}
	return p.print([]string{"id", "name", "dim", "size", "created"}, rows, list)
}

func (p printer) printMatches(ms []store.Match) error {
	if ms == nil {
		ms = []store.Match{}
	}
	rows := make([][]string, len(ms))
	for i, m := range ms {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(m.Index), m.Name, formatFloat(m.Score)}
	}
	return p.print([]string{"rank", "index", "name", "similarity"}, rows, ms)
}
