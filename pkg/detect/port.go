package detect

import (
	"context"
	"net"
	"time"
)

const (
	// DefaultFridaAddr is where frida-server listens by default.
	DefaultFridaAddr = "127.0.0.1:27042"
	// DefaultProbeTimeout bounds the connect attempt.
	DefaultProbeTimeout = 100 * time.Millisecond
)

// PortProbe fires when a TCP connect to Addr succeeds within Timeout.
type PortProbe struct {
	Addr    string
	Timeout time.Duration
}

func (c *PortProbe) Name() string       { return "frida_port" }
func (c *PortProbe) Category() Category { return CategoryHook }

// Detect treats every dial failure, including refusal and timeout, as "not
// listening" rather than an error.
func (c *PortProbe) Detect(ctx context.Context) (bool, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	addr := c.Addr
	if addr == "" {
		addr = DefaultFridaAddr
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false, nil
	}
	conn.Close()
	return true, nil
}
