package driver

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openlinky/linky_tic/pkg/sensor"
	"github.com/openlinky/linky_tic/pkg/tic"
)

// scriptedSource replays framed lines as a single byte stream, then fails
// with io.EOF.
type scriptedSource struct {
	data []byte
}

func (s *scriptedSource) Open() error  { return nil }
func (s *scriptedSource) Close() error { return nil }

func (s *scriptedSource) ReadChunk(p []byte) (int, error) {
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.data)
	s.data = s.data[n:]
	return n, nil
}

func newTestDriver(t *testing.T, frames [][]byte, opts Options) (*Driver, *sensor.Cache) {
	t.Helper()
	cache, err := sensor.NewCache(map[string]int{
		sensor.SensorIINST:  4,
		sensor.SensorSINSTS: 4,
	}, 0)
	require.NoError(t, err)

	var data []byte
	for _, f := range frames {
		data = append(data, f...)
	}
	return New(&scriptedSource{data: data}, cache, zap.NewNop().Sugar(), opts), cache
}

func TestPumpDeliversEventsInOrder(t *testing.T) {
	frames := [][]byte{
		tic.EncodeLine("IINST", "005"),
		tic.EncodeLine("SINSTS", "00460"),
		tic.EncodeLine("IINST", "007"),
	}

	var events []sensor.Event
	drv, _ := newTestDriver(t, frames, Options{
		OnEvent: func(ev sensor.Event) { events = append(events, ev) },
	})

	processed, err := drv.Pump()
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, processed)

	require.Len(t, events, 3)
	assert.Equal(t, int64(5), events[0].Message.Value)
	assert.Equal(t, int64(460), events[1].Message.Value)
	assert.Equal(t, int64(7), events[2].Message.Value)
}

func TestPumpSkipsCorruptedFrames(t *testing.T) {
	bad := tic.EncodeLine("IINST", "006")
	bad[7]++ // corrupt the payload under an unchanged checksum

	frames := [][]byte{
		tic.EncodeLine("IINST", "005"),
		bad,
		tic.EncodeLine("IINST", "007"),
	}

	var events []sensor.Event
	var diags []Diagnostic
	drv, _ := newTestDriver(t, frames, Options{
		OnEvent:                 func(ev sensor.Event) { events = append(events, ev) },
		OnDiagnostic:            func(d Diagnostic) { diags = append(diags, d) },
		BroadcastChecksumErrors: true,
	})

	_, err := drv.Pump()
	require.ErrorIs(t, err, io.EOF)

	// The corrupted frame is dropped, the stream continues.
	require.Len(t, events, 2)
	assert.Equal(t, int64(5), events[0].Message.Value)
	assert.Equal(t, int64(7), events[1].Message.Value)

	require.Len(t, diags, 1)
	assert.Equal(t, DiagChecksum, diags[0].Kind)
}

func TestPumpChecksumBroadcastOptIn(t *testing.T) {
	bad := tic.EncodeLine("IINST", "006")
	bad[7]++

	var diags []Diagnostic
	drv, _ := newTestDriver(t, [][]byte{bad}, Options{
		OnEvent:      func(sensor.Event) {},
		OnDiagnostic: func(d Diagnostic) { diags = append(diags, d) },
	})

	_, err := drv.Pump()
	require.ErrorIs(t, err, io.EOF)
	assert.Empty(t, diags, "checksum faults stay local unless opted in")
}

func TestPumpReportsParseFaults(t *testing.T) {
	frames := [][]byte{
		tic.EncodeLine("IINST", "abc"), // valid checksum, bad payload
		tic.EncodeLine("IINST", "007"),
	}

	var events []sensor.Event
	var diags []Diagnostic
	drv, _ := newTestDriver(t, frames, Options{
		OnEvent:      func(ev sensor.Event) { events = append(events, ev) },
		OnDiagnostic: func(d Diagnostic) { diags = append(diags, d) },
	})

	_, err := drv.Pump()
	require.ErrorIs(t, err, io.EOF)

	require.Len(t, events, 1)
	assert.Equal(t, int64(7), events[0].Message.Value)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagParse, diags[0].Kind)
}

func TestPumpSkipsIgnoredLabels(t *testing.T) {
	frames := [][]byte{
		tic.EncodeLine("CCASN", "01500"), // known meter label, not in the grammar
		tic.EncodeLine("IINST", "007"),
	}

	var events []sensor.Event
	drv, _ := newTestDriver(t, frames, Options{
		OnEvent: func(ev sensor.Event) { events = append(events, ev) },
	})

	_, err := drv.Pump()
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, events, 1)
	assert.Equal(t, "IINST", events[0].Message.Label)
}

func TestPumpUpdatesCacheState(t *testing.T) {
	frames := [][]byte{
		tic.EncodeLine("IINST", "005"),
		tic.EncodeLine("IINST", "005"), // unchanged: cached, not emitted
	}

	var events []sensor.Event
	drv, cache := newTestDriver(t, frames, Options{
		OnEvent: func(ev sensor.Event) { events = append(events, ev) },
	})

	processed, err := drv.Pump()
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, processed)
	assert.Len(t, events, 1)

	latest := cache.Latest()
	for _, snap := range latest {
		if snap.Sensor == sensor.SensorIINST {
			require.NotNil(t, snap.Values[0])
			assert.Equal(t, int64(5), snap.Values[0].Value)
		}
	}
}
