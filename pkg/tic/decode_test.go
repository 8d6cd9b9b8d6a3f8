package tic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInteger(t *testing.T) {
	tests := []struct {
		text  string
		label string
		value int64
	}{
		{"IINST\t007", "IINST", 7},
		{"SINSTS\t00022", "SINSTS", 22},
		{"IRMS2\t003", "IRMS2", 3},
		{"EAST\t012345678", "EAST", 12345678},
		{"NJOURF+1\t01", "NJOURF+1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg, err := Decode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, KindInteger, msg.Kind)
			assert.Equal(t, tt.label, msg.Label)
			assert.Equal(t, tt.value, msg.Value)
		})
	}
}

func TestDecodeText(t *testing.T) {
	msg, err := Decode("LTARF\tHC BLEU")
	require.NoError(t, err)
	assert.Equal(t, KindText, msg.Kind)
	assert.Equal(t, "HC BLEU", msg.Text)
}

func TestDecodeStamped(t *testing.T) {
	t.Run("with value", func(t *testing.T) {
		msg, err := Decode("SMAXSN\tH231110100819\t02300")
		require.NoError(t, err)
		assert.Equal(t, KindTimestamped, msg.Kind)
		assert.True(t, msg.HasValue)
		assert.Equal(t, int64(2300), msg.Value)
		assert.Equal(t, "H231110100819", msg.Stamp.String())

		summer, err := msg.Stamp.Summer()
		require.NoError(t, err)
		assert.False(t, summer)

		hour, err := msg.Stamp.Hour()
		require.NoError(t, err)
		assert.Equal(t, 10, hour)
	})

	t.Run("date only", func(t *testing.T) {
		msg, err := Decode("DATE\tE240702154530\t")
		require.NoError(t, err)
		assert.Equal(t, KindTimestamped, msg.Kind)
		assert.False(t, msg.HasValue)

		summer, err := msg.Stamp.Summer()
		require.NoError(t, err)
		assert.True(t, summer)
	})

	t.Run("malformed stamp", func(t *testing.T) {
		_, err := Decode("SMAXSN\t2311\t02300")
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestDecodeRegisterRecord(t *testing.T) {
	msg, err := Decode("STGE\t002A0011")
	require.NoError(t, err)
	require.Equal(t, KindRegister, msg.Kind)

	reg := msg.Register
	assert.Equal(t, uint32(0x002A0011), reg.Raw)
	assert.True(t, reg.RelayOpen)
	assert.Equal(t, CutClose, reg.Cut)
	assert.True(t, reg.DoorOpen)
	assert.False(t, reg.OverTension)
	assert.False(t, reg.OverPower)
	assert.Equal(t, ModeConsumer, reg.Mode)
	assert.Equal(t, EnergyNegative, reg.Energy)
}

func TestDecodeProfile(t *testing.T) {
	msg, err := Decode("PJOURF+1\t00004001 0630C002 NONUTILE NONUTILE")
	require.NoError(t, err)
	require.Equal(t, KindProfile, msg.Kind)

	p := msg.Profile
	require.Equal(t, 2, p.Count)
	assert.Equal(t, ProfileSlot{Hour: 0, Minute: 0, Selector: 0x4001}, p.Slots[0])
	assert.Equal(t, ProfileSlot{Hour: 6, Minute: 30, Selector: 0xC002}, p.Slots[1])
}

func TestDecodeEmptyInput(t *testing.T) {
	msg, err := Decode("")
	require.NoError(t, err)
	assert.Equal(t, KindNoData, msg.Kind)
}

func TestDecodeUnknownLabelIgnored(t *testing.T) {
	msg, err := Decode("CCASN-1\t01500")
	require.NoError(t, err)
	assert.Equal(t, KindIgnored, msg.Kind)
	assert.Equal(t, "CCASN-1", msg.Label)
}

func TestDecodeGarbage(t *testing.T) {
	for _, text := range []string{
		"not a label\tvalue",
		"IINST",           // known label, no payload
		"IINST\tabc",      // non-numeric integer payload
		"STGE\tZZZZ",      // non-hex register payload
		"PJOURF+1\t06x",   // undersized profile token
		"lowercase\t0042", // bad label alphabet
	} {
		_, err := Decode(text)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", text)
	}
}

func TestDecodeIsPure(t *testing.T) {
	first, err := Decode("IINST\t012")
	require.NoError(t, err)
	second, err := Decode("IINST\t012")
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestDecodeAllKnownLabelsRoundTrip(t *testing.T) {
	// A representative payload per shape; every grammar entry must survive
	// the full encode/validate/decode path.
	payload := map[shape][]string{
		shapeInteger:  {"00042"},
		shapeText:     {"SOME TEXT"},
		shapeStamped:  {"H231110100819", "00230"},
		shapeRegister: {"003A4001"},
		shapeProfile:  {"00004001 NONUTILE"},
	}

	for _, label := range Labels() {
		fields := append([]string{label}, payload[grammar[label]]...)
		text, err := Validate(EncodeLine(fields...))
		require.NoError(t, err, "label %s", label)

		msg, err := Decode(text)
		require.NoError(t, err, "label %s", label)
		assert.Equal(t, label, msg.Label)
		assert.NotEqual(t, KindIgnored, msg.Kind, "label %s fell through the grammar", label)
	}
}
