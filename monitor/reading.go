package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// readingPrefix matches the firmware's MeasureOnce output, e.g.
// "distance: 85.75 cm"
const readingPrefix = "distance: "

// Reading is one distance report parsed from the firmware's output
type Reading struct {
	Distance float64
	Unit     string
}

func (r Reading) String() string {
	return fmt.Sprintf("%.2f %s", r.Distance, r.Unit)
}

// ParseReading extracts a Reading from one line of firmware output. It
// returns false for anything that is not a distance line
func ParseReading(line string) (Reading, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, readingPrefix) {
		return Reading{}, false
	}

	fields := strings.Fields(strings.TrimPrefix(line, readingPrefix))
	if len(fields) != 2 {
		return Reading{}, false
	}

	distance, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Reading{}, false
	}

	unit := fields[1]
	if unit != "cm" && unit != "in" {
		return Reading{}, false
	}

	return Reading{Distance: distance, Unit: unit}, true
}
