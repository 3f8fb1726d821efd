package transport

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// UDP sends every payload as a single datagram on a connected UDP socket.
// Concurrent Transmit calls are safe; each is one write syscall.
type UDP struct {
	conn net.Conn
}

// Dial connects a UDP socket to addr. Connecting a UDP socket only
// resolves the address; no packet is sent until the first Transmit.
func Dial(addr string, timeout time.Duration) (*UDP, error) {
	conn, err := net.DialTimeout("udp", addr, timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed dialing statsd at %s", addr)
	}
	return NewUDP(conn), nil
}

// NewUDP wraps an already connected socket.
func NewUDP(conn net.Conn) *UDP {
	return &UDP{conn: conn}
}

// Transmit writes payload as one datagram.
func (u *UDP) Transmit(payload string) error {
	if _, err := u.conn.Write([]byte(payload)); err != nil {
		return errors.Wrap(err, "failed writing statsd datagram")
	}
	return nil
}

// LocalAddr returns the local address of the socket.
func (u *UDP) LocalAddr() net.Addr {
	return u.conn.LocalAddr()
}

// Close closes the socket. The owner of the UDP transport closes it, never
// the emitter using it.
func (u *UDP) Close() error {
	return u.conn.Close()
}
