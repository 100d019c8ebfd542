package marlin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mastercactapus/cmm/coord"
)

// ParsePosition parses an M114 position report of the form
// "X:10.00 Y:20.00 Z:30.00 E:0.00 ...". Fields other than X, Y and Z
// are ignored.
func ParsePosition(line string) (coord.Point, error) {
	var p coord.Point
	var found bool
	for _, field := range strings.Fields(line) {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			p.X = f
			found = true
		case "Y":
			p.Y = f
			found = true
		case "Z":
			p.Z = f
			found = true
		}
	}
	if !found {
		return coord.Point{}, fmt.Errorf("marlin: no axis data in position report %q", line)
	}
	return p, nil
}
