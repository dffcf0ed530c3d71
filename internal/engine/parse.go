package engine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// energyMarker is printed by every generated deck and script so the result
// can be picked out of arbitrary engine chatter.
const energyMarker = "potval_energy="

// scanEnergy reads engine output line by line, failing fast on ERROR lines
// and otherwise looking for the energy marker.
func scanEnergy(r io.Reader) (float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "ERROR") {
			return 0, fmt.Errorf("%w: %q", ErrBadOutput, strings.TrimSpace(line))
		}
		idx := strings.Index(line, energyMarker)
		if idx < 0 {
			continue
		}
		val := strings.TrimSpace(line[idx+len(energyMarker):])
		if i := strings.IndexAny(val, " \t"); i >= 0 {
			val = val[:i]
		}
		e, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad value %q", ErrEnergyNotFound, val)
		}
		return e, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, ErrEnergyNotFound
}

// outputTail keeps the last n lines of raw subprocess output for error
// messages, so a parse failure is still diagnosable.
func outputTail(out []byte, n int) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
