package pathfinder

import (
	"fmt"
	"os"
)

// PathsHeader is the fixed first line of the paths output file.
const PathsHeader = "(actor)--[movie#@year]-->(actor)--..."

// OutputWriter handles writing query results to files
type OutputWriter struct{}

func NewOutputWriter() *OutputWriter {
	return &OutputWriter{}
}

// WritePaths writes the header line, then one line per query: the
// formatted chain, or an empty line when the query failed, keeping
// line alignment with the pairs file.
func (ow *OutputWriter) WritePaths(outputFile string, result *Result) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", outputFile, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "%s\n", PathsHeader)
	for _, query := range result.Queries {
		if query.Path != nil {
			fmt.Fprintf(file, "%s\n", query.Path.String())
		} else {
			fmt.Fprintf(file, "\n")
		}
	}

	return nil
}
