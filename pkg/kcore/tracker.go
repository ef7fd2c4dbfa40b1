package kcore

import (
	"encoding/json"
	"os"
	"time"
)

// PruneEvent is one removal record in the JSONL trace.
type PruneEvent struct {
	Pass      int    `json:"pass"`
	Ordinal   int    `json:"ordinal"`
	Actor     string `json:"actor"`
	Count     int    `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

// PruneTracker streams removal events to a JSONL file for offline
// analysis of pruning cascades. A nil tracker is a no-op.
type PruneTracker struct {
	file    *os.File
	encoder *json.Encoder
}

func NewPruneTracker(filename string) *PruneTracker {
	file, err := os.Create(filename)
	if err != nil {
		return nil
	}

	return &PruneTracker{
		file:    file,
		encoder: json.NewEncoder(file),
	}
}

func (pt *PruneTracker) LogRemoval(pass, ordinal int, actor string, count int) {
	if pt == nil {
		return
	}

	event := PruneEvent{
		Pass:      pass,
		Ordinal:   ordinal,
		Actor:     actor,
		Count:     count,
		Timestamp: time.Now().Unix(),
	}

	pt.encoder.Encode(event)
}

func (pt *PruneTracker) Close() {
	if pt != nil && pt.file != nil {
		pt.file.Close()
	}
}
