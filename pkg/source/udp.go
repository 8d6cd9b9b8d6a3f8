package source

import (
	"fmt"
	"net"
)

// UDP receives TIC frames relayed as datagrams. A datagram carries zero,
// one, several or a partial line; LineReader does the reassembly.
type UDP struct {
	bind string
	port int
	conn *net.UDPConn
}

func NewUDP(bind string, port int) *UDP {
	return &UDP{bind: bind, port: port}
}

func (u *UDP) Open() error {
	addr, err := net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", u.bind, u.port))
	if err != nil {
		return fmt.Errorf("source: failed to resolve %s:%d: %w", u.bind, u.port, err)
	}
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return fmt.Errorf("source: failed to bind udp %s:%d: %w", u.bind, u.port, err)
	}
	u.conn = conn
	return nil
}

func (u *UDP) Close() error {
	if u.conn == nil {
		return nil
	}
	err := u.conn.Close()
	u.conn = nil
	return err
}

// ReadChunk returns one datagram.
func (u *UDP) ReadChunk(p []byte) (int, error) {
	if u.conn == nil {
		return 0, fmt.Errorf("source: udp socket %s:%d not open", u.bind, u.port)
	}
	n, _, err := u.conn.ReadFromUDP(p)
	return n, err
}

func (u *UDP) String() string {
	return fmt.Sprintf("udp://%s:%d", u.bind, u.port)
}
