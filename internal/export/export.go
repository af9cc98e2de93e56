// Package export writes digitized data points to disk.
package export

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"data-digitizer/internal/points"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"
)

// Header is the column header of the text export.
const Header = "#x\ty"

// SheetName is the worksheet used by the xlsx export.
const SheetName = "Data"

// Rows returns the Data-kind points sorted ascending by X. Equal X values
// keep store order.
func Rows(pts []points.Point) []points.Point {
	var out []points.Point
	for _, p := range pts {
		if p.Kind == points.Data {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b points.Point) int {
		return cmp.Compare(a.X, b.X)
	})
	return out
}

// WriteText writes the tab-delimited export of pts to w.
func WriteText(w io.Writer, pts []points.Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	for _, p := range Rows(pts) {
		fmt.Fprintf(bw, "%.18e\t%.18e\n", p.X, p.Y)
	}
	return bw.Flush()
}

// SaveText writes the tab-delimited export of pts to path.
func SaveText(path string, pts []points.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteText(f, pts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Saved %d data points to %s", len(Rows(pts)), path)
	return nil
}

// SaveXLSX writes pts to an Excel workbook at path, one row per Data point
// under an x/y header.
func SaveXLSX(path string, pts []points.Point) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{"x", "y"}); err != nil {
		return err
	}
	for i, p := range Rows(pts) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{p.X, p.Y}); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("Saved workbook %s", path)
	return nil
}

// Summary describes the calibrated Data points of a session.
type Summary struct {
	Count      int
	XMin, XMax float64
	YMin, YMax float64
}

// Summarize computes the extent of the Data points. The bounds are zero when
// there are no Data points.
func Summarize(pts []points.Point) Summary {
	rows := Rows(pts)
	s := Summary{Count: len(rows)}
	if len(rows) == 0 {
		return s
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, p := range rows {
		xs[i], ys[i] = p.X, p.Y
	}
	s.XMin, s.XMax = floats.Min(xs), floats.Max(xs)
	s.YMin, s.YMax = floats.Min(ys), floats.Max(ys)
	return s
}

func (s Summary) String() string {
	if s.Count == 0 {
		return "no data points"
	}
	return fmt.Sprintf("%d data points, x in [%g, %g], y in [%g, %g]",
		s.Count, s.XMin, s.XMax, s.YMin, s.YMax)
}
