// Package source provides the byte providers a Linky meter can be read
// from (serial line or UDP relay) and the line reassembly shared by both.
package source

// Chunker is the transport contract consumed by LineReader. One ReadChunk
// returns whatever the transport has: a whole line, several, or a fragment.
// ReadChunk blocks until data arrives or the handle fails; closing the
// source from another goroutine unblocks it with an error.
type Chunker interface {
	Open() error
	Close() error
	ReadChunk(p []byte) (int, error)
}
