package tic

import (
	"strings"
	"unicode/utf8"
)

// Checksum computes the TIC frame checksum over data: the running byte sum
// reduced modulo 64, shifted into the printable range. The 6-bit width (and
// its 1/64 collision rate) is a property of the wire protocol.
func Checksum(data []byte) byte {
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return byte(sum&0x3f) + 0x20
}

// Validate checks the trailing checksum byte of a reassembled line and
// returns the verified text with the framing stripped: the terminator, the
// checksum byte and the separator preceding it are removed, leaving
// `LABEL\tPAYLOAD[\tSTAMP]`.
//
// The checksum covers every byte from the label up to and including the
// separator before the checksum itself.
func Validate(line []byte) (string, error) {
	// Tolerate both a bare LF and a CRLF the reassembly did not strip.
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	if len(line) < 4 {
		return "", ErrLineTooShort
	}
	if !utf8.Valid(line) {
		return "", ErrInvalidEncoding
	}

	payload := line[:len(line)-1]
	if Checksum(payload) != line[len(line)-1] {
		return "", &ChecksumError{Line: string(line)}
	}

	return strings.TrimSuffix(string(payload), "\t"), nil
}

// EncodeLine builds a framed TIC line from its fields, computing the
// checksum over label, payload and separators. The inverse of
// Validate+Decode for every record shape.
func EncodeLine(fields ...string) []byte {
	body := strings.Join(fields, "\t") + "\t"
	out := make([]byte, 0, len(body)+3)
	out = append(out, body...)
	out = append(out, Checksum([]byte(body)), '\r', '\n')
	return out
}
