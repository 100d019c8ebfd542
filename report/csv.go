// Package report persists completed measurement lists.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mastercactapus/cmm/coord"
)

// CSV writes measurement records as comma-separated X,Y,Z rows with a
// header. Each Write replaces the file contents.
type CSV struct {
	Path string
}

func NewCSV(path string) *CSV {
	return &CSV{Path: path}
}

func (c *CSV) Write(points []coord.Point) error {
	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", c.Path, err)
	}

	w := csv.NewWriter(f)
	if err = w.Write([]string{"X", "Y", "Z"}); err == nil {
		for _, p := range points {
			if err = w.Write(record(p)); err != nil {
				break
			}
		}
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", c.Path, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", c.Path, err)
	}
	return f.Close()
}

func record(p coord.Point) []string {
	return []string{
		strconv.FormatFloat(p.X, 'f', -1, 64),
		strconv.FormatFloat(p.Y, 'f', -1, 64),
		strconv.FormatFloat(p.Z, 'f', -1, 64),
	}
}
