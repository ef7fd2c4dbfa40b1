package pathfinder

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
)

// ReadPairsFile reads a query pairs file: tab-separated, header row
// discarded, each row exactly two fields (start actor, end actor).
func ReadPairsFile(path string) ([][2]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open pairs file %s: %w", path, err)
	}
	defer file.Close()

	pairs := make([][2]string, 0)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		line := scanner.Text()

		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, bipartite.MalformedRecordError{
				Line:   lineNum,
				Record: line,
				Reason: fmt.Sprintf("expected 2 tab-separated fields, got %d", len(fields)),
			}
		}
		pairs = append(pairs, [2]string{fields[0], fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pairs file %s: %w", path, err)
	}

	return pairs, nil
}
