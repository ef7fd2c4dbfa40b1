package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
	"github.com/gilchrisn/costar-graph-service/pkg/kcore"
	"github.com/gilchrisn/costar-graph-service/pkg/pipeline"
)

func main() {
	if len(os.Args) != 4 {
		log.Fatalf("Usage: %s <credits_file> <k> <output_file>", os.Args[0])
	}

	creditsFile := os.Args[1]
	k, err := strconv.Atoi(os.Args[2])
	if err != nil || k < 0 {
		log.Fatalf("Usage: %s <credits_file> <k> <output_file> (k must be a non-negative integer)", os.Args[0])
	}
	outputFile := os.Args[3]

	fmt.Println("=== Co-star Popularity (K-core) ===")
	fmt.Printf("Credits file: %s\n", creditsFile)
	fmt.Printf("k: %d\n", k)
	fmt.Printf("Output file: %s\n", outputFile)
	fmt.Println()

	config := kcore.NewConfig()
	logger := config.CreateLogger()

	// Step 1: Load the credits file
	fmt.Println("Step 1: Loading credits...")
	session, err := pipeline.LoadSession(creditsFile, bipartite.DefaultLoadOptions(), logger)
	if err != nil {
		log.Fatalf("Loading credits failed: %v", err)
	}
	fmt.Printf("Loaded %d actors and %d movies\n", session.Graph.NumActors(), session.Graph.NumMovies())

	// Step 2: Prune to the k-core
	fmt.Println("Step 2: Pruning to the k-core...")
	ctx := context.Background()
	result, err := session.KCore(k, config, ctx)
	if err != nil {
		log.Fatalf("K-core analysis failed: %v", err)
	}

	// Step 3: Write the members
	fmt.Println("Step 3: Writing members...")
	writer := kcore.NewOutputWriter()
	if err := writer.WriteMembers(outputFile, result); err != nil {
		log.Fatalf("Writing members failed: %v", err)
	}

	displayResults(os.Stdout, result, outputFile)
}

func displayResults(w io.Writer, result *kcore.Result, outputFile string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Results ===")
	fmt.Fprintf(w, "Members: %d\n", len(result.Members))
	fmt.Fprintf(w, "Removed: %d\n", result.Statistics.Removed)
	fmt.Fprintf(w, "Passes: %d\n", result.Statistics.Passes)
	fmt.Fprintf(w, "Runtime: %d ms\n", result.Statistics.RuntimeMS)
	fmt.Fprintf(w, "Peak memory: %d MB\n", result.Statistics.MemoryPeakMB)
	fmt.Fprintf(w, "Members written to: %s\n", outputFile)
}
