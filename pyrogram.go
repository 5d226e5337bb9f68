// Copyright (c) 2025 @AmarnathCJD

package sessionconv

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/amarnathcjd/sessionconv/internal/encoding/bin"
)

// pyrogramLayout describes one revision of the compact layout. Every revision starts with
// the version byte and the dc id.
type pyrogramLayout struct {
	appID bool // u32 api id right after the dc id
	user  bool // u64 user id and bot flag after the key
}

func (l pyrogramLayout) size() int {
	n := 1 + 1 + 1 + AuthKeySize
	if l.appID {
		n += 4
	}
	if l.user {
		n += 8 + 1
	}
	return n
}

var pyrogramLayouts = map[int]pyrogramLayout{
	1: {},
	2: {user: true},
	3: {appID: true, user: true},
}

// PyrogramCodec handles the compact layout: URL-safe unpadded base64 of a version byte
// followed by big-endian fields. The layout has no server address; consumers derive it
// from the dc id.
type PyrogramCodec struct{}

func (PyrogramCodec) Format() Format { return FormatPyrogram }

func (PyrogramCodec) Carries() Fields { return FieldEnvironment | FieldUser | FieldAppID }

func (PyrogramCodec) Decode(raw string) (*Descriptor, error) {
	buf, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(raw), "="))
	if err != nil {
		return nil, malformed(FormatPyrogram, "encoding", err)
	}
	if len(buf) == 0 {
		return nil, malformed(FormatPyrogram, "version", errors.New("empty session"))
	}

	version := int(buf[0])
	layout, ok := pyrogramLayouts[version]
	if !ok {
		return nil, unsupported(FormatPyrogram, version)
	}
	if len(buf) != layout.size() {
		return nil, malformed(FormatPyrogram, "length", errors.Errorf("version %d wants %d bytes, got %d", version, layout.size(), len(buf)))
	}

	r := bin.NewReader(buf[1:])
	d := &Descriptor{Format: FormatPyrogram, FormatVersion: version}
	d.DataCenterID = int(r.PopUint8("dc id"))
	if layout.appID {
		d.AppID = int32(r.PopUint32("api id"))
	}
	d.TestEnvironment = r.PopBool("test mode")
	d.AuthKey = r.PopRawBytes("authorization key", AuthKeySize)
	if layout.user {
		d.UserID = int64(r.PopUint64("user id"))
		d.IsBot = r.PopBool("is bot")
	}
	r.ExpectEOF()

	if err := r.Err(); err != nil {
		return nil, malformed(FormatPyrogram, bin.Field(err), err)
	}
	return d, nil
}

func (PyrogramCodec) Encode(d *Descriptor) (string, error) {
	if err := d.validate(FormatPyrogram); err != nil {
		return "", err
	}

	version := d.versionFor(FormatPyrogram)
	if version == 0 {
		version = pyrogramVersionFor(d)
	}
	layout, ok := pyrogramLayouts[version]
	if !ok {
		return "", unsupported(FormatPyrogram, version)
	}

	w := bin.NewWriter(layout.size())
	w.PutUint8(uint8(version))
	w.PutUint8(uint8(d.DataCenterID))
	if layout.appID {
		w.PutUint32(uint32(d.AppID))
	}
	w.PutBool(d.TestEnvironment)
	w.PutFixedBytes("authorization key", d.AuthKey, AuthKeySize)
	if layout.user {
		w.PutUint64(uint64(d.UserID))
		w.PutBool(d.IsBot)
	}
	if err := w.CheckErr(); err != nil {
		return "", malformed(FormatPyrogram, "", err)
	}

	return base64.RawURLEncoding.EncodeToString(w.Bytes()), nil
}

// pyrogramVersionFor picks the smallest revision that keeps every field d has.
func pyrogramVersionFor(d *Descriptor) int {
	switch {
	case d.AppID != 0:
		return 3
	case d.UserID != 0 || d.IsBot:
		return 2
	default:
		return 1
	}
}
