// Copyright (c) 2025 @AmarnathCJD

package sessionconv

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/amarnathcjd/sessionconv/internal/encoding/bin"
)

const telethonVersion = '1'

// TelethonCodec handles the verbose layout: a version character, then padded standard
// base64 of dc id, length-prefixed textual address, big-endian port and the key.
type TelethonCodec struct{}

func (TelethonCodec) Format() Format { return FormatTelethon }

func (TelethonCodec) Carries() Fields { return FieldAddress }

func (TelethonCodec) Decode(raw string) (*Descriptor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, malformed(FormatTelethon, "version", errors.New("empty session"))
	}
	if raw[0] != telethonVersion {
		return nil, unsupported(FormatTelethon, string(raw[0]))
	}

	buf, err := base64.StdEncoding.DecodeString(raw[1:])
	if err != nil {
		return nil, malformed(FormatTelethon, "encoding", err)
	}

	r := bin.NewReader(buf)
	d := &Descriptor{Format: FormatTelethon, FormatVersion: int(telethonVersion - '0')}
	d.DataCenterID = int(r.PopUint8("dc id"))
	d.ServerAddress = r.PopShortString("server address")
	d.ServerPort = int(r.PopUint16("server port"))
	d.AuthKey = r.PopRawBytes("authorization key", AuthKeySize)
	r.ExpectEOF()

	if err := r.Err(); err != nil {
		return nil, malformed(FormatTelethon, bin.Field(err), err)
	}
	if d.ServerAddress == "" {
		return nil, malformed(FormatTelethon, "server address", errors.New("empty address"))
	}
	if d.ServerPort == 0 {
		return nil, malformed(FormatTelethon, "server port", errors.New("port is zero"))
	}

	d.IPv6 = isIPv6(d.ServerAddress)
	return d, nil
}

func (TelethonCodec) Encode(d *Descriptor) (string, error) {
	if err := d.validate(FormatTelethon); err != nil {
		return "", err
	}
	if v := d.versionFor(FormatTelethon); v != 0 && v != int(telethonVersion-'0') {
		return "", unsupported(FormatTelethon, v)
	}
	if !d.HasAddress() {
		return "", incomplete(FormatTelethon, "server address", errors.New("missing"))
	}
	if d.ServerPort < 0 || d.ServerPort > 0xffff {
		return "", malformed(FormatTelethon, "server port", errors.Errorf("%d out of range", d.ServerPort))
	}

	w := bin.NewWriter(1 + 1 + len(d.ServerAddress) + 2 + AuthKeySize)
	w.PutUint8(uint8(d.DataCenterID))
	w.PutShortString("server address", d.ServerAddress)
	w.PutUint16(uint16(d.ServerPort))
	w.PutFixedBytes("authorization key", d.AuthKey, AuthKeySize)
	if err := w.CheckErr(); err != nil {
		return "", malformed(FormatTelethon, "", err)
	}

	return string(telethonVersion) + base64.StdEncoding.EncodeToString(w.Bytes()), nil
}
