package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gilchrisn/costar-graph-service/pkg/pathfinder"
)

func TestDisplayResults(t *testing.T) {
	result := &pathfinder.Result{
		Statistics: pathfinder.Statistics{
			QueriesRun:   3,
			PathsFound:   2,
			RuntimeMS:    12,
			MemoryPeakMB: 7,
		},
	}

	var buf bytes.Buffer
	displayResults(&buf, result, "paths.tsv")

	// Every counter is an integer and must render as one
	expected := "\n=== Results ===\n" +
		"Queries run: 3\n" +
		"Paths found: 2\n" +
		"Runtime: 12 ms\n" +
		"Peak memory: 7 MB\n" +
		"Paths written to: paths.tsv\n"
	assert.Equal(t, expected, buf.String())
}
