// Package netprobe decides whether the host is online by dialing a well-known address.
package netprobe

import (
	"context"
	"net"
	"time"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
)

// DefaultDialTimeout bounds a single connectivity check.
const DefaultDialTimeout = 3 * time.Second

var _ ports.ConnectivityProbe = (*Dialer)(nil)

// Dialer implements ports.ConnectivityProbe with a TCP dial.
type Dialer struct {
	address string
	timeout time.Duration
	dial    func(ctx context.Context, network, address string) (net.Conn, error)
}

// New creates a Dialer for address. An empty address uses domain.DefaultConnectivityAddress.
func New(address string) *Dialer {
	if address == "" {
		address = domain.DefaultConnectivityAddress
	}
	d := &net.Dialer{}
	return &Dialer{
		address: address,
		timeout: DefaultDialTimeout,
		dial:    d.DialContext,
	}
}

// Online reports whether a TCP connection to the address can be opened.
func (d *Dialer) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	conn, err := d.dial(ctx, "tcp", d.address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Address returns the dialed address.
func (d *Dialer) Address() string {
	return d.address
}
