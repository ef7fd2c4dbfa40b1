package predictor

import (
	"bufio"
	"fmt"
	"os"
)

// ReadTargetsFile reads the query actors file: header line discarded,
// one actor name per line. Lines are kept verbatim, so a blank line
// becomes an unknown-actor query and the output stays line-aligned.
func ReadTargetsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open targets file %s: %w", path, err)
	}
	defer file.Close()

	targets := make([]string, 0)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		targets = append(targets, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading targets file %s: %w", path, err)
	}

	return targets, nil
}
