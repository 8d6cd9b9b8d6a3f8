package tic

import (
	"errors"
	"fmt"
)

var (
	// ErrLineTooShort marks a line too short to hold a label and checksum.
	ErrLineTooShort = errors.New("tic: line too short")

	// ErrInvalidEncoding marks non-UTF-8 content. The TIC medium is text-safe,
	// so this points at a transport fault rather than a corrupt frame.
	ErrInvalidEncoding = errors.New("tic: line is not valid utf-8")
)

// ChecksumError reports a frame whose trailing checksum byte does not match.
// Recoverable: the frame is discarded and the stream continues.
type ChecksumError struct {
	Line string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("tic: checksum mismatch in %q", e.Line)
}

// ParseError reports a verified line that matches no known record shape.
// Recoverable: the line is discarded and the stream continues.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tic: cannot parse record %q", e.Text)
}
