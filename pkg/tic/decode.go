package tic

import (
	"strconv"
	"strings"
)

type shape int

const (
	shapeInteger shape = iota
	shapeText
	shapeStamped
	shapeRegister
	shapeProfile
)

// grammar is the single dispatch table of the standard TIC dialect:
// every known label and the record shape its payload follows. Labels the
// meter emits that are missing here decode to KindIgnored.
var grammar = map[string]shape{
	// instantaneous current (aggregate + per phase)
	"IINST":  shapeInteger,
	"IINST1": shapeInteger,
	"IINST2": shapeInteger,
	"IINST3": shapeInteger,

	// instantaneous apparent power
	"SINSTS":  shapeInteger,
	"SINSTS1": shapeInteger,
	"SINSTS2": shapeInteger,
	"SINSTS3": shapeInteger,

	// RMS current and voltage per phase
	"IRMS1": shapeInteger,
	"IRMS2": shapeInteger,
	"IRMS3": shapeInteger,
	"URMS1": shapeInteger,
	"URMS2": shapeInteger,
	"URMS3": shapeInteger,

	// over-consumption warnings
	"ADPS":  shapeInteger,
	"ADIR1": shapeInteger,
	"ADIR2": shapeInteger,
	"ADIR3": shapeInteger,

	// subscribed and cut-off power, energy totals
	"PREF":  shapeInteger,
	"PCOUP": shapeInteger,
	"EAST":  shapeInteger,
	"EAIT":  shapeInteger,

	"RELAIS":   shapeInteger,
	"NTARF":    shapeInteger,
	"NJOURF":   shapeInteger,
	"NJOURF+1": shapeInteger,

	"ADSC":  shapeText,
	"MSG1":  shapeText,
	"MSG2":  shapeText,
	"NGTF":  shapeText,
	"LTARF": shapeText,

	"DATE":     shapeStamped,
	"SMAXSN":   shapeStamped,
	"SMAXSN-1": shapeStamped,
	"SMAXIN":   shapeStamped,
	"SMAXIN-1": shapeStamped,
	"UMOY1":    shapeStamped,
	"UMOY2":    shapeStamped,
	"UMOY3":    shapeStamped,

	"STGE": shapeRegister,

	"PJOURF+1": shapeProfile,
	"PPOINTE":  shapeProfile,
}

// Labels returns every label the decoder recognizes.
func Labels() []string {
	labels := make([]string, 0, len(grammar))
	for label := range grammar {
		labels = append(labels, label)
	}
	return labels
}

// Decode parses verified text (as returned by Validate) into a Message.
// It is a pure function of its input. Unknown well-formed labels decode to
// KindIgnored; anything else returns a ParseError.
func Decode(text string) (Message, error) {
	if text == "" {
		return Message{Kind: KindNoData}, nil
	}

	fields := strings.Split(text, "\t")
	label := fields[0]

	sh, known := grammar[label]
	if !known {
		if wellFormedLabel(label) && len(fields) >= 2 {
			return Message{Label: label, Kind: KindIgnored}, nil
		}
		return Message{}, &ParseError{Text: text}
	}
	if len(fields) < 2 {
		return Message{}, &ParseError{Text: text}
	}

	msg := Message{Label: label}
	switch sh {
	case shapeInteger:
		// Payloads are zero padded on the wire; parse plain base 10.
		value, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Message{}, &ParseError{Text: text}
		}
		msg.Kind = KindInteger
		msg.Value = value

	case shapeText:
		msg.Kind = KindText
		msg.Text = fields[1]

	case shapeStamped:
		stamp, err := NewTimestamp(fields[1])
		if err != nil {
			return Message{}, &ParseError{Text: text}
		}
		msg.Kind = KindTimestamped
		msg.Stamp = stamp
		if len(fields) >= 3 && fields[2] != "" {
			value, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return Message{}, &ParseError{Text: text}
			}
			msg.Value = value
			msg.HasValue = true
		}

	case shapeRegister:
		raw, err := strconv.ParseUint(fields[1], 16, 32)
		if err != nil {
			return Message{}, &ParseError{Text: text}
		}
		msg.Kind = KindRegister
		msg.Register = DecodeRegister(uint32(raw))

	case shapeProfile:
		profile, err := parseProfile(fields[1])
		if err != nil {
			return Message{}, &ParseError{Text: text}
		}
		msg.Kind = KindProfile
		msg.Profile = profile
	}

	return msg, nil
}

// wellFormedLabel accepts the label alphabet of the TIC catalogue:
// uppercase alphanumerics plus the '+'/'-' suffix markers.
func wellFormedLabel(label string) bool {
	if label == "" {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '+' || c == '-':
		default:
			return false
		}
	}
	return true
}
