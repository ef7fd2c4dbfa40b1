package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gilchrisn/costar-graph-service/pkg/pathfinder"
	"github.com/gilchrisn/costar-graph-service/pkg/pipeline"
)

func main() {
	if len(os.Args) != 5 {
		log.Fatalf("Usage: %s <credits_file> <u|w> <pairs_file> <output_file>", os.Args[0])
	}

	creditsFile := os.Args[1]
	weightFlag := os.Args[2]
	pairsFile := os.Args[3]
	outputFile := os.Args[4]

	if weightFlag != "u" && weightFlag != "w" {
		log.Fatalf("Usage: %s <credits_file> <u|w> <pairs_file> <output_file>", os.Args[0])
	}
	weighted := weightFlag == "w"

	fmt.Println("=== Co-star Shortest Paths ===")
	fmt.Printf("Credits file: %s\n", creditsFile)
	fmt.Printf("Pairs file: %s\n", pairsFile)
	fmt.Printf("Output file: %s\n", outputFile)
	fmt.Printf("Weighted: %v\n", weighted)
	fmt.Println()

	config := pathfinder.NewConfig()
	config.Set("graph.weighted", weighted)
	logger := config.CreateLogger()

	// Step 1: Load the credits file
	fmt.Println("Step 1: Loading credits...")
	session, err := pipeline.LoadSession(creditsFile, config.LoadOptions(), logger)
	if err != nil {
		log.Fatalf("Loading credits failed: %v", err)
	}
	fmt.Printf("Loaded %d actors and %d movies\n", session.Graph.NumActors(), session.Graph.NumMovies())

	// Step 2: Read the query pairs
	fmt.Println("Step 2: Reading query pairs...")
	pairs, err := pathfinder.ReadPairsFile(pairsFile)
	if err != nil {
		log.Fatalf("Reading query pairs failed: %v", err)
	}
	fmt.Printf("Read %d pairs\n", len(pairs))

	// Step 3: Run the queries
	fmt.Println("Step 3: Running shortest-path queries...")
	ctx := context.Background()
	result, err := session.ShortestPaths(pairs, config, ctx)
	if err != nil {
		log.Fatalf("Shortest-path analysis failed: %v", err)
	}

	// Step 4: Write the paths
	fmt.Println("Step 4: Writing paths...")
	writer := pathfinder.NewOutputWriter()
	if err := writer.WritePaths(outputFile, result); err != nil {
		log.Fatalf("Writing paths failed: %v", err)
	}

	displayResults(os.Stdout, result, outputFile)
}

func displayResults(w io.Writer, result *pathfinder.Result, outputFile string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Results ===")
	fmt.Fprintf(w, "Queries run: %d\n", result.Statistics.QueriesRun)
	fmt.Fprintf(w, "Paths found: %d\n", result.Statistics.PathsFound)
	fmt.Fprintf(w, "Runtime: %d ms\n", result.Statistics.RuntimeMS)
	fmt.Fprintf(w, "Peak memory: %d MB\n", result.Statistics.MemoryPeakMB)
	fmt.Fprintf(w, "Paths written to: %s\n", outputFile)
}
