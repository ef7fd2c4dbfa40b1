package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
	"github.com/gilchrisn/costar-graph-service/pkg/pipeline"
	"github.com/gilchrisn/costar-graph-service/pkg/predictor"
)

func main() {
	if len(os.Args) != 5 {
		log.Fatalf("Usage: %s <credits_file> <targets_file> <future_output> <collabs_output>", os.Args[0])
	}

	creditsFile := os.Args[1]
	targetsFile := os.Args[2]
	futureFile := os.Args[3]
	collabsFile := os.Args[4]

	fmt.Println("=== Co-star Link Prediction ===")
	fmt.Printf("Credits file: %s\n", creditsFile)
	fmt.Printf("Targets file: %s\n", targetsFile)
	fmt.Printf("Future interactions output: %s\n", futureFile)
	fmt.Printf("New collaborations output: %s\n", collabsFile)
	fmt.Println()

	config := predictor.NewConfig()
	logger := config.CreateLogger()

	// Step 1: Load the credits file
	fmt.Println("Step 1: Loading credits...")
	session, err := pipeline.LoadSession(creditsFile, bipartite.DefaultLoadOptions(), logger)
	if err != nil {
		log.Fatalf("Loading credits failed: %v", err)
	}
	fmt.Printf("Loaded %d actors and %d movies\n", session.Graph.NumActors(), session.Graph.NumMovies())

	// Step 2: Read the target actors
	fmt.Println("Step 2: Reading targets...")
	targets, err := predictor.ReadTargetsFile(targetsFile)
	if err != nil {
		log.Fatalf("Reading targets failed: %v", err)
	}
	fmt.Printf("Read %d targets\n", len(targets))

	ctx := context.Background()
	writer := predictor.NewOutputWriter()

	// Step 3: Predict future interactions (already-connected candidates)
	fmt.Println("Step 3: Predicting future interactions...")
	future, err := session.Predictions(targets, predictor.FutureInteractions, config, ctx)
	if err != nil {
		log.Fatalf("Prediction analysis failed: %v", err)
	}
	if err := writer.WritePredictions(futureFile, future); err != nil {
		log.Fatalf("Writing predictions failed: %v", err)
	}

	// Step 4: Predict new collaborations (not-yet-connected candidates)
	fmt.Println("Step 4: Predicting new collaborations...")
	collabs, err := session.Predictions(targets, predictor.NewCollaborations, config, ctx)
	if err != nil {
		log.Fatalf("Prediction analysis failed: %v", err)
	}
	if err := writer.WritePredictions(collabsFile, collabs); err != nil {
		log.Fatalf("Writing predictions failed: %v", err)
	}

	displayResults(os.Stdout, future, collabs, futureFile, collabsFile)
}

func displayResults(w io.Writer, future, collabs *predictor.Result, futureFile, collabsFile string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Results ===")
	fmt.Fprintf(w, "Targets run: %d\n", future.Statistics.TargetsRun)
	fmt.Fprintf(w, "Future interactions runtime: %d ms\n", future.Statistics.RuntimeMS)
	fmt.Fprintf(w, "New collaborations runtime: %d ms\n", collabs.Statistics.RuntimeMS)
	fmt.Fprintf(w, "Predictions written to: %s, %s\n", futureFile, collabsFile)
}
