package predictor

import (
	"fmt"
	"os"
	"strings"
)

// PredictionsHeader is the fixed first line of a predictions file. The
// header is comma-separated while data rows are tab-separated; the
// mismatch comes from the original report format and is kept as is.
const PredictionsHeader = "Actor1,Actor2,Actor3,Actor4"

// OutputWriter handles writing results to files
type OutputWriter struct{}

func NewOutputWriter() *OutputWriter {
	return &OutputWriter{}
}

// WritePredictions writes the header line, then one row per query
// actor: the ranked names joined by single tabs, with no trailing
// separator. Failed queries and empty candidate sets produce an empty
// line, keeping alignment with the targets file.
func (ow *OutputWriter) WritePredictions(outputFile string, result *Result) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", outputFile, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "%s\n", PredictionsHeader)
	for _, prediction := range result.Predictions {
		fmt.Fprintf(file, "%s\n", strings.Join(prediction.Candidates, "\t"))
	}

	return nil
}
