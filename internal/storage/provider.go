// Package storage defines the file-system abstraction shared by the corpus
// reader and the site writer.
package storage

import "time"

// FileInfo describes one file under a provider root.
type FileInfo struct {
	// Path is relative to the provider root, slash-separated.
	Path    string
	ModTime time.Time
}

// Provider is the interface for corpus and output file operations.
type Provider interface {
	// List returns every file under the root whose name ends in ext
	// (ext "" matches all), sorted lexicographically by relative path.
	List(ext string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to root).
	Delete(path string) error
	// Abs resolves path against the root, rejecting escapes.
	Abs(path string) (string, error)
}
