package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fsh/qplanarity/pkg/errors"
)

// =============================================================================
// Puzzle Serialization API
// =============================================================================

// MarshalPuzzle converts a puzzle to indented JSON bytes.
func MarshalPuzzle(p Puzzle) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePuzzleTo(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePuzzleFile writes a puzzle to a JSON file.
// The file is created with 0644 permissions.
func WritePuzzleFile(p Puzzle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePuzzleTo(p, f)
}

// WritePuzzle writes a puzzle as JSON to an io.Writer.
func WritePuzzle(p Puzzle, w io.Writer) error {
	return writePuzzleTo(p, w)
}

// ReadPuzzleFile reads and validates a JSON puzzle file.
// A missing file is reported as FILE_NOT_FOUND.
func ReadPuzzleFile(path string) (Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Puzzle{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "puzzle file %s", path)
		}
		return Puzzle{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readPuzzleFrom(f)
}

// ReadPuzzle decodes and validates a JSON puzzle from an io.Reader.
func ReadPuzzle(r io.Reader) (Puzzle, error) {
	return readPuzzleFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writePuzzleTo(p Puzzle, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readPuzzleFrom(r io.Reader) (Puzzle, error) {
	var p Puzzle
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Puzzle{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}
	if err := p.Validate(); err != nil {
		return Puzzle{}, err
	}
	return p, nil
}
