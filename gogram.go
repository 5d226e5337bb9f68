// Copyright (c) 2025 @AmarnathCJD

package sessionconv

import (
	"net"
	"strconv"

	"github.com/pkg/errors"

	"github.com/amarnathcjd/sessionconv/internal/session"
)

// GogramCodec handles gogram's own "1BvX" string sessions. They store host:port and the
// app id, but not the environment.
type GogramCodec struct{}

func (GogramCodec) Format() Format { return FormatGogram }

func (GogramCodec) Carries() Fields { return FieldAddress | FieldAppID }

func (GogramCodec) Decode(raw string) (*Descriptor, error) {
	s := session.NewEmptyStringSession()
	if err := s.Decode(raw); err != nil {
		var de *session.DecodeError
		switch {
		case errors.Is(err, session.ErrUnknownPrefix):
			return nil, unsupported(FormatGogram, raw[:min(len(raw), len(session.StringPrefix))])
		case errors.As(err, &de):
			return nil, malformed(FormatGogram, de.Field, de.Err)
		}
		return nil, malformed(FormatGogram, "", err)
	}

	host, p, err := net.SplitHostPort(s.IpAddr())
	if err != nil {
		return nil, malformed(FormatGogram, "address", err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 0xffff {
		return nil, malformed(FormatGogram, "address", errors.Errorf("invalid port %q", p))
	}

	return &Descriptor{
		DataCenterID:  s.DcID(),
		IPv6:          isIPv6(host),
		ServerAddress: host,
		ServerPort:    port,
		AuthKey:       s.AuthKey(),
		AppID:         s.AppID(),
		FormatVersion: 1,
		Format:        FormatGogram,
	}, nil
}

func (GogramCodec) Encode(d *Descriptor) (string, error) {
	if err := d.validate(FormatGogram); err != nil {
		return "", err
	}
	if v := d.versionFor(FormatGogram); v > 1 {
		return "", unsupported(FormatGogram, v)
	}
	if !d.HasAddress() {
		return "", incomplete(FormatGogram, "address", errors.New("missing"))
	}

	return session.NewStringSession(d.AuthKey, d.DataCenterID, d.Hostname(), d.AppID).Encode(), nil
}
