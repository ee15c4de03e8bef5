package conformance

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds a report's state for resuming an interrupted run:
// the results gathered so far and the index of the next case to run.
type Checkpoint struct {
	Results   []Result
	Completed int
}

// SaveCheckpoint writes run state to a file.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint loads run state from a file.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
