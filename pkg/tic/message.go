// Package tic implements the framing and record grammar of the Linky
// Télé-Information Client protocol ("mode standard", Enedis-NOI-CPT_54E).
// A frame is one line `LABEL \t PAYLOAD [\t STAMP] \t CHECKSUM \r? \n`;
// Validate strips the framing, Decode turns the remaining text into a
// typed Message.
package tic

import (
	"encoding/json"
)

// Kind tags the payload shape of a decoded Message.
type Kind int

const (
	// KindNoData is the sentinel for "no full line available yet".
	KindNoData Kind = iota
	// KindIgnored marks a recognized but uninteresting label.
	KindIgnored
	KindInteger
	KindText
	KindTimestamped
	KindRegister
	KindProfile
)

func (k Kind) String() string {
	switch k {
	case KindNoData:
		return "nodata"
	case KindIgnored:
		return "ignored"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindTimestamped:
		return "timestamped"
	case KindRegister:
		return "register"
	case KindProfile:
		return "profile"
	}
	return "unknown"
}

// Message is one decoded TIC record. Only the fields selected by Kind are
// meaningful; the zero values of the others keep Message comparable, so two
// decodings of the same line are equal with ==.
type Message struct {
	Label string
	Kind  Kind

	// KindInteger, and KindTimestamped when HasValue is set.
	Value    int64
	HasValue bool

	// KindText.
	Text string

	// KindTimestamped.
	Stamp Timestamp

	// KindRegister.
	Register RegisterStatus

	// KindProfile.
	Profile Profile
}

// Equal reports structural equality of two messages.
func (m Message) Equal(other Message) bool {
	return m == other
}

func (m Message) MarshalJSON() ([]byte, error) {
	out := struct {
		Label    string          `json:"label"`
		Kind     string          `json:"kind"`
		Value    *int64          `json:"value,omitempty"`
		Text     string          `json:"text,omitempty"`
		Stamp    string          `json:"stamp,omitempty"`
		Register *RegisterStatus `json:"register,omitempty"`
		Profile  *Profile        `json:"profile,omitempty"`
	}{
		Label: m.Label,
		Kind:  m.Kind.String(),
	}

	switch m.Kind {
	case KindInteger:
		v := m.Value
		out.Value = &v
	case KindText:
		out.Text = m.Text
	case KindTimestamped:
		out.Stamp = m.Stamp.String()
		if m.HasValue {
			v := m.Value
			out.Value = &v
		}
	case KindRegister:
		r := m.Register
		out.Register = &r
	case KindProfile:
		p := m.Profile
		out.Profile = &p
	}
	return json.Marshal(out)
}
