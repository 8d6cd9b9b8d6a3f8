package source

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkQueue replays scripted chunks, then fails with io.EOF. Chunk
// boundaries model arbitrary datagram or serial read splits.
type chunkQueue struct {
	chunks [][]byte
	opened bool
}

func (q *chunkQueue) Open() error  { q.opened = true; return nil }
func (q *chunkQueue) Close() error { q.opened = false; return nil }

func (q *chunkQueue) ReadChunk(p []byte) (int, error) {
	if len(q.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, q.chunks[0])
	if n < len(q.chunks[0]) {
		q.chunks[0] = q.chunks[0][n:]
	} else {
		q.chunks = q.chunks[1:]
	}
	return n, nil
}

func readAll(t *testing.T, r *LineReader) []string {
	t.Helper()
	var lines []string
	buf := make([]byte, 256)
	for {
		n, err := r.ReadLine(buf)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return lines
		}
		lines = append(lines, string(buf[:n]))
	}
}

func TestReadLineSpanningChunks(t *testing.T) {
	q := &chunkQueue{chunks: [][]byte{
		[]byte("IINST\t0"),
		[]byte("07\tP\r"),
		[]byte("\n"),
	}}
	lines := readAll(t, NewLineReader(q))
	assert.Equal(t, []string{"IINST\t007\tP\n"}, lines)
}

func TestReadLineMultiplePerChunk(t *testing.T) {
	q := &chunkQueue{chunks: [][]byte{
		[]byte("IINST\t007\tP\r\nSINSTS\t00460\t)\r\nLTARF\tH"),
		[]byte("C BLEU\t-\r\n"),
	}}
	lines := readAll(t, NewLineReader(q))
	assert.Equal(t, []string{
		"IINST\t007\tP\n",
		"SINSTS\t00460\t)\n",
		"LTARF\tHC BLEU\t-\n",
	}, lines)
}

func TestReadLineDropsCarriageReturns(t *testing.T) {
	q := &chunkQueue{chunks: [][]byte{[]byte("ADSC\t\r123456\tX\r\n")}}
	lines := readAll(t, NewLineReader(q))
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "\r")
}

func TestReadLineDiscardsUndersizedLines(t *testing.T) {
	// Truncated frame tail at stream start, then blank lines between frames.
	q := &chunkQueue{chunks: [][]byte{
		[]byte("\tP\r\n"),
		[]byte("\r\n\r\nIINST\t007\tP\r\n\r\n"),
	}}
	lines := readAll(t, NewLineReader(q))
	assert.Equal(t, []string{"IINST\t007\tP\n"}, lines)
}

func TestReadLineOrderPreserved(t *testing.T) {
	var chunks [][]byte
	want := []string{}
	frames := []string{"AAAA\t1\tX\n", "BBBB\t2\tY\n", "CCCC\t3\tZ\n", "DDDD\t4\tW\n"}
	for _, f := range frames {
		// One byte per chunk: the worst possible fragmentation.
		for i := 0; i < len(f); i++ {
			chunks = append(chunks, []byte{f[i]})
		}
		want = append(want, f)
	}
	lines := readAll(t, NewLineReader(&chunkQueue{chunks: chunks}))
	assert.Equal(t, want, lines)
}

func TestReadLineOverflow(t *testing.T) {
	// A terminator-less run past the buffer is dropped, then reassembly
	// resumes with the next frames.
	big := make([]byte, 3000)
	for i := range big {
		big[i] = 'A'
	}
	q := &chunkQueue{chunks: [][]byte{big, []byte("\nIINST\t007\tP\r\n")}}
	r := NewLineReader(q)

	buf := make([]byte, 1024)
	_, err := r.ReadLine(buf)
	require.ErrorIs(t, err, ErrLineTooLong)
	assert.Equal(t, 0, r.Buffered())

	// The tail of the oversized run is still in the source and ends with a
	// terminator; it parses as one (bogus) line before the real frame.
	n, err := r.ReadLine(buf)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), buf[n-1])

	n, err = r.ReadLine(buf)
	require.NoError(t, err)
	assert.Equal(t, "IINST\t007\tP\n", string(buf[:n]))
}

func TestResetDropsPartialLine(t *testing.T) {
	q := &chunkQueue{chunks: [][]byte{
		[]byte("IINST\t0"), // no terminator yet
	}}
	r := NewLineReader(q)

	buf := make([]byte, 256)
	_, err := r.ReadLine(buf)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 7, r.Buffered())

	r.Reset()
	assert.Equal(t, 0, r.Buffered())
}
