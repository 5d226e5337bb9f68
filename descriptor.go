// Copyright (c) 2025 @AmarnathCJD

package sessionconv

import (
	"net"
	"net/netip"
	"strconv"

	"github.com/pkg/errors"

	"github.com/amarnathcjd/sessionconv/internal/utils"
)

// AuthKeySize is the length of an MTProto authorization key.
const AuthKeySize = 256

// Descriptor is the format-neutral form of an authenticated session. Codecs decode into it
// and encode from it; it holds no state beyond its fields.
type Descriptor struct {
	DataCenterID    int
	TestEnvironment bool
	IPv6            bool

	// empty after decoding formats that do not store an address
	ServerAddress string
	ServerPort    int

	AuthKey []byte

	UserID int64 // 0 when unknown
	IsBot  bool
	AppID  int32 // 0 when unknown

	// FormatVersion is the layout revision within Format; 0 lets the codec choose.
	FormatVersion int
	// Format is the layout FormatVersion belongs to, set by Decode. Codecs of other
	// formats ignore the version. Empty applies it to whichever format encodes d.
	Format Format
}

// Clone returns a deep copy of d.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.AuthKey = append([]byte(nil), d.AuthKey...)
	return &c
}

// HasAddress reports whether both server address and port are set.
func (d *Descriptor) HasAddress() bool {
	return d.ServerAddress != "" && d.ServerPort != 0
}

// Hostname is the server address as host:port, or "" if there is none.
func (d *Descriptor) Hostname() string {
	if !d.HasAddress() {
		return ""
	}
	return net.JoinHostPort(d.ServerAddress, strconv.Itoa(d.ServerPort))
}

// KeyID is the hex auth key id; safe to log.
func (d *Descriptor) KeyID() string {
	return utils.AuthKeyID(d.AuthKey)
}

// versionFor is the layout revision to encode d with as f. Versions do not carry over
// between formats.
func (d *Descriptor) versionFor(f Format) int {
	if d.Format != "" && d.Format != f {
		return 0
	}
	return d.FormatVersion
}

func (d *Descriptor) validate(f Format) error {
	switch {
	case len(d.AuthKey) == 0:
		return incomplete(f, "authorization key", errors.New("missing"))
	case len(d.AuthKey) != AuthKeySize:
		return malformed(f, "authorization key", errors.Errorf("want %d bytes, got %d", AuthKeySize, len(d.AuthKey)))
	case d.DataCenterID < 1 || d.DataCenterID > 0xff:
		return malformed(f, "dc id", errors.Errorf("%d out of range", d.DataCenterID))
	}
	return nil
}

func isIPv6(host string) bool {
	ip, err := netip.ParseAddr(host)
	return err == nil && ip.Is6() && !ip.Is4In6()
}

// Address is an explicit server location.
type Address struct {
	Host string
	Port int
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// ParseAddress parses host:port, accepting bracketed IPv6 hosts.
func ParseAddress(s string) (Address, error) {
	host, p, err := net.SplitHostPort(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "parsing address")
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 0xffff {
		return Address{}, errors.Errorf("parsing address: invalid port %q", p)
	}
	if host == "" {
		return Address{}, errors.New("parsing address: empty host")
	}
	return Address{Host: host, Port: port}, nil
}
