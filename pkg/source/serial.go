package source

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
)

// Serial reads TIC frames from the meter's dedicated serial output:
// 7 data bits with parity, 1200 baud for historic meters or 9600 for
// standard mode. Invalid parameters fail at construction, before any I/O.
type Serial struct {
	device  string
	options serial.OpenOptions
	port    io.ReadWriteCloser
}

func NewSerial(device string, baudrate uint, parity string) (*Serial, error) {
	if baudrate != 1200 && baudrate != 9600 {
		return nil, fmt.Errorf("source: tic only supports 1200 or 9600 baud, got %d", baudrate)
	}

	var parityMode serial.ParityMode
	switch parity {
	case "even":
		parityMode = serial.PARITY_EVEN
	case "odd":
		parityMode = serial.PARITY_ODD
	default:
		return nil, fmt.Errorf("source: tic only supports even or odd parity, got %q", parity)
	}

	return &Serial{
		device: device,
		options: serial.OpenOptions{
			PortName:        device,
			BaudRate:        baudrate,
			DataBits:        7,
			StopBits:        1,
			ParityMode:      parityMode,
			MinimumReadSize: 1,
		},
	}, nil
}

func (s *Serial) Open() error {
	port, err := serial.Open(s.options)
	if err != nil {
		return fmt.Errorf("source: failed to open serial port %s: %w", s.device, err)
	}
	s.port = port
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Serial) ReadChunk(p []byte) (int, error) {
	if s.port == nil {
		return 0, fmt.Errorf("source: serial port %s not open", s.device)
	}
	return s.port.Read(p)
}

func (s *Serial) String() string {
	return s.device
}
