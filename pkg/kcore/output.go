package kcore

import (
	"fmt"
	"os"
)

// MembersHeader is the fixed first line of the members output file.
const MembersHeader = "Actor"

// OutputWriter handles writing results to files
type OutputWriter struct{}

func NewOutputWriter() *OutputWriter {
	return &OutputWriter{}
}

// WriteMembers writes the header line, then one retained actor name
// per line, lexicographically sorted.
func (ow *OutputWriter) WriteMembers(outputFile string, result *Result) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", outputFile, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "%s\n", MembersHeader)
	for _, name := range result.Members {
		fmt.Fprintf(file, "%s\n", name)
	}

	return nil
}
