package log

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadEvents reads all events from a CBOR event log stream.
// It stops at the first decode error or clean EOF.
func ReadEvents(r io.Reader) ([]Event, error) {
	dec := NewDecoder(r)

	var events []Event
	for {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, fmt.Errorf("failed to decode event %d: %w", len(events), err)
		}
		events = append(events, ev)
	}
}

// ReadEventsFile reads all events from a CBOR event log file written by
// FileLogger.
func ReadEventsFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEvents(f)
}
