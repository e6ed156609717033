package output

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nsmc"
	"nsmc/likelihood"
)

// ReadObservationTable parses the three-column whitespace-separated input
// table of spec.md §6 (covariate, observation, uncertainty), one row per
// line. Blank lines and lines starting with "#" are skipped.
func ReadObservationTable(path string) ([]likelihood.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nsmc.NewError(nsmc.ErrIO, "output.ReadObservationTable", err)
	}
	defer f.Close()

	var rows []likelihood.Observation
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, nsmc.NewError(nsmc.ErrIO, "output.ReadObservationTable",
				fmt.Errorf("line %d: expected 3 whitespace-separated columns, got %d", lineNo, len(fields)))
		}
		covariate, err1 := strconv.ParseFloat(fields[0], 64)
		value, err2 := strconv.ParseFloat(fields[1], 64)
		sigma, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, nsmc.NewError(nsmc.ErrIO, "output.ReadObservationTable",
				fmt.Errorf("line %d: non-numeric field", lineNo))
		}
		rows = append(rows, likelihood.Observation{Covariate: covariate, Value: value, Sigma: sigma})
	}
	if err := scanner.Err(); err != nil {
		return nil, nsmc.NewError(nsmc.ErrIO, "output.ReadObservationTable", err)
	}
	return rows, nil
}
