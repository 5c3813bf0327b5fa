package client

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"time"

	"GestureLink/internal/gesture"
	"GestureLink/pkg/types"
)

// PumpFrames feeds newline-delimited HandTrackingData documents from r
// into the pipeline until EOF. The external detector pipes one document
// per recognition cycle; cadence is irregular and that is fine, only
// per-frame timestamp order matters. Malformed lines are skipped.
func PumpFrames(r io.Reader, pipeline *gesture.Pipeline) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var frame types.HandTrackingData
		if err := json.Unmarshal(line, &frame); err != nil {
			log.Printf("Skipping malformed frame: %v", err)
			continue
		}
		at := time.Now()
		if frame.Timestamp > 0 {
			at = time.UnixMilli(frame.Timestamp)
		}
		pipeline.Process(frame.Payload, at)
	}
	return scanner.Err()
}
