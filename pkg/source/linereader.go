package source

import (
	"errors"
)

// ringCapacity bounds the reassembly buffer. No single TIC line comes close
// to this; a line that overflows it is dropped via ErrLineTooLong.
const ringCapacity = 2048

// minLineBytes is the shortest frame worth keeping: anything of 3 bytes or
// less (terminator included) cannot hold a label and a checksum.
const minLineBytes = 3

// ErrLineTooLong reports a terminator-less byte run exceeding the buffer.
// Recoverable: the buffer is dropped and reassembly restarts.
var ErrLineTooLong = errors.New("source: line exceeds reassembly buffer")

// LineReader reframes a Chunker's byte stream into discrete lines. Chunk
// boundaries carry no meaning: a chunk may hold several lines or a fragment,
// and one line may span chunks. Lines are delivered strictly in arrival
// order.
type LineReader struct {
	src   Chunker
	buf   [ringCapacity]byte
	start int
	end   int
}

func NewLineReader(src Chunker) *LineReader {
	return &LineReader{src: src}
}

// ReadLine copies the next complete line into out, terminator included and
// carriage returns dropped, and returns its length. Undersized lines are
// discarded and scanning resumes. Blocks on the source only when no complete
// line is buffered; source errors pass through unchanged.
func (r *LineReader) ReadLine(out []byte) (int, error) {
	for {
		if n, ok := r.extract(out); ok {
			if n <= minLineBytes {
				continue
			}
			return n, nil
		}

		r.compact()
		if r.end == len(r.buf) {
			r.Reset()
			return 0, ErrLineTooLong
		}

		n, err := r.src.ReadChunk(r.buf[r.end:])
		if err != nil {
			return 0, err
		}
		r.end += n
	}
}

// Reset drops any buffered partial line. Must accompany a source reopen so
// stale bytes never prefix the fresh stream.
func (r *LineReader) Reset() {
	r.start = 0
	r.end = 0
}

// Buffered returns the number of unconsumed bytes awaiting a terminator.
func (r *LineReader) Buffered() int {
	return r.end - r.start
}

// extract scans the unconsumed region for a line feed, copying bytes into
// out and skipping carriage returns. On success the consumed region is
// released and the copied length returned.
func (r *LineReader) extract(out []byte) (int, bool) {
	n := 0
	for i := r.start; i < r.end; i++ {
		c := r.buf[i]
		if c == '\r' {
			continue
		}
		if n < len(out) {
			out[n] = c
			n++
		}
		if c == '\n' {
			r.start = i + 1
			return n, true
		}
	}
	return 0, false
}

// compact moves the unconsumed tail to the buffer start so the next receive
// gets the full remaining capacity.
func (r *LineReader) compact() {
	if r.start == 0 {
		return
	}
	copy(r.buf[:], r.buf[r.start:r.end])
	r.end -= r.start
	r.start = 0
}
