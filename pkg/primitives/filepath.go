package primitives

import (
	"hash/fnv"
	"path/filepath"
)

// Filepath is a type-safe wrapper around heap file paths. Table identity is
// derived from it by hashing, per the storage engine's contract that a
// table's id is stable for a given absolute path.
type Filepath string

// Hash derives a TableID from the path via FNV-1a. Two Filepath values with
// the same string always hash to the same TableID.
func (f Filepath) Hash() TableID {
	h := fnv.New64a()
	h.Write([]byte(f))
	return TableID(h.Sum64())
}

func (f Filepath) String() string { return string(f) }

func (f Filepath) IsEmpty() bool { return string(f) == "" }

// Abs returns the absolute form of the path, which is what Hash should be
// called on so that two different relative spellings of the same file
// resolve to the same TableID.
func (f Filepath) Abs() (Filepath, error) {
	abs, err := filepath.Abs(string(f))
	if err != nil {
		return "", err
	}
	return Filepath(abs), nil
}
