package tic

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// timestampLen is fixed by the protocol: one season flag followed by
// YYMMDDhhmmss.
const timestampLen = 13

// Timestamp is the 13-character date token attached to stamped records,
// e.g. "H231110100819". 'H' marks winter time ("heure d'hiver"), 'E' summer.
type Timestamp struct {
	raw [timestampLen]byte
}

func NewTimestamp(token string) (Timestamp, error) {
	var t Timestamp
	if len(token) != timestampLen {
		return t, fmt.Errorf("tic: timestamp %q must be %d characters", token, timestampLen)
	}
	copy(t.raw[:], token)
	return t, nil
}

func (t Timestamp) String() string {
	return string(t.raw[:])
}

// Summer reports whether the stamp carries the summer-time flag.
func (t Timestamp) Summer() (bool, error) {
	switch t.raw[0] {
	case 'H':
		return false, nil
	case 'E':
		return true, nil
	}
	return false, fmt.Errorf("tic: invalid season flag %q", t.raw[0])
}

func (t Timestamp) Year() (int, error)   { return t.field(1) }
func (t Timestamp) Month() (int, error)  { return t.field(3) }
func (t Timestamp) Day() (int, error)    { return t.field(5) }
func (t Timestamp) Hour() (int, error)   { return t.field(7) }
func (t Timestamp) Minute() (int, error) { return t.field(9) }
func (t Timestamp) Second() (int, error) { return t.field(11) }

func (t Timestamp) field(offset int) (int, error) {
	v, err := strconv.Atoi(string(t.raw[offset : offset+2]))
	if err != nil {
		return 0, fmt.Errorf("tic: invalid timestamp token %q", t.String())
	}
	return v, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
