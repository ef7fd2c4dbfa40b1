package bipartite

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// creditFields is the exact field count of a credits row.
const creditFields = 3

// LoadCreditsFile reads a tab-separated credits file into a bipartite
// graph. The first line is a header and is discarded; every following
// line must hold exactly three tab-separated fields: actor name, movie
// title, movie year (integer). Any violation aborts the load.
func LoadCreditsFile(path string, opts LoadOptions) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open credits file %s: %w", path, err)
	}
	defer file.Close()

	graph := NewGraph(opts)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			// Header row carries column names, not data
			continue
		}
		line := scanner.Text()

		fields := strings.Split(line, "\t")
		if len(fields) != creditFields {
			return nil, MalformedRecordError{
				Line:   lineNum,
				Record: line,
				Reason: fmt.Sprintf("expected %d tab-separated fields, got %d", creditFields, len(fields)),
			}
		}

		year, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, MalformedRecordError{
				Line:   lineNum,
				Record: line,
				Reason: fmt.Sprintf("year %q is not an integer", fields[2]),
			}
		}

		credit := Credit{Actor: fields[0], Title: fields[1], Year: year}
		if err := graph.AddCredit(credit); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading credits file %s: %w", path, err)
	}

	return graph, nil
}
