package testing

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Trace is the sequence of writes the engine made, grouped by frame.
type Trace struct {
	Frames []TraceFrame `json:"frames"`
}

// TraceFrame holds the writes of one pump.
type TraceFrame struct {
	// At is the fake time since the tester was created.
	At     string       `json:"at"`
	Writes []TraceWrite `json:"writes"`
}

// TraceWrite is one property write.
type TraceWrite struct {
	Target   string `json:"target"`
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// MatchesFile compares this trace against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// MOTION_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (tr *Trace) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("MOTION_UPDATE_SNAPSHOTS") == "1" {
		if err := tr.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadTrace(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: MOTION_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := tr.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got)\n%s\n\nTo update: MOTION_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this trace to the given path, creating directories as
// needed.
func (tr *Trace) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Diff compares the JSON forms of other and tr. It returns an empty string
// when they are equal.
func (tr *Trace) Diff(other *Trace) string {
	return cmp.Diff(normalize(other), normalize(tr))
}

// normalize round-trips a trace through JSON so values compare by their
// serialized form (an int written as 1 equals a float64 1).
func normalize(tr *Trace) *Trace {
	data, err := json.Marshal(tr)
	if err != nil {
		return tr
	}
	var out Trace
	if err := json.Unmarshal(data, &out); err != nil {
		return tr
	}
	return &out
}

func loadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}
