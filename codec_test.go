// Copyright (c) 2025 @AmarnathCJD

package sessionconv_test

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarnathcjd/sessionconv"
	"github.com/amarnathcjd/sessionconv/internal/utils"
)

func zeroKey() []byte {
	return make([]byte, sessionconv.AuthKeySize)
}

func randomKey() []byte {
	return utils.RandomBytes(sessionconv.AuthKeySize)
}

// compact builds a pyrogram session by hand: version, dc, test flag, key and any tail.
func compact(version, dc byte, test bool, key []byte, tail ...byte) string {
	buf := []byte{version, dc, 0}
	if test {
		buf[2] = 1
	}
	buf = append(buf, key...)
	buf = append(buf, tail...)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// verbose builds a telethon session by hand.
func verbose(dc byte, addr string, port uint16, key []byte) string {
	var buf bytes.Buffer
	buf.WriteByte(dc)
	buf.WriteByte(byte(len(addr)))
	buf.WriteString(addr)
	_ = binary.Write(&buf, binary.BigEndian, port)
	buf.Write(key)
	return "1" + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		codec sessionconv.Codec
		d     *sessionconv.Descriptor
	}{
		{
			name:  "pyrogram v1",
			codec: sessionconv.PyrogramCodec{},
			d:     &sessionconv.Descriptor{DataCenterID: 2, TestEnvironment: true, AuthKey: randomKey(), FormatVersion: 1},
		},
		{
			name:  "pyrogram v2",
			codec: sessionconv.PyrogramCodec{},
			d:     &sessionconv.Descriptor{DataCenterID: 4, AuthKey: randomKey(), UserID: 5000801609, IsBot: true, FormatVersion: 2},
		},
		{
			name:  "pyrogram v2 without user",
			codec: sessionconv.PyrogramCodec{},
			d:     &sessionconv.Descriptor{DataCenterID: 4, AuthKey: randomKey(), FormatVersion: 2},
		},
		{
			name:  "pyrogram v3",
			codec: sessionconv.PyrogramCodec{},
			d:     &sessionconv.Descriptor{DataCenterID: 5, AuthKey: randomKey(), AppID: 6, UserID: 777000, FormatVersion: 3},
		},
		{
			name:  "telethon ipv4",
			codec: sessionconv.TelethonCodec{},
			d: &sessionconv.Descriptor{
				DataCenterID: 2, ServerAddress: "149.154.167.40", ServerPort: 443, AuthKey: randomKey(), FormatVersion: 1,
			},
		},
		{
			name:  "telethon ipv6",
			codec: sessionconv.TelethonCodec{},
			d: &sessionconv.Descriptor{
				DataCenterID: 1, IPv6: true, ServerAddress: "2001:b28:f23d:f001::e", ServerPort: 443, AuthKey: randomKey(), FormatVersion: 1,
			},
		},
		{
			name:  "telethon unregistered dc",
			codec: sessionconv.TelethonCodec{},
			d: &sessionconv.Descriptor{
				DataCenterID: 99, ServerAddress: "10.0.0.99", ServerPort: 8443, AuthKey: randomKey(), FormatVersion: 1,
			},
		},
		{
			name:  "gogram",
			codec: sessionconv.GogramCodec{},
			d: &sessionconv.Descriptor{
				DataCenterID: 4, ServerAddress: "149.154.167.91", ServerPort: 443, AuthKey: randomKey(), AppID: 6, FormatVersion: 1,
			},
		},
		{
			name:  "gogram ipv6",
			codec: sessionconv.GogramCodec{},
			d: &sessionconv.Descriptor{
				DataCenterID: 2, IPv6: true, ServerAddress: "2001:67c:4e8:f002::a", ServerPort: 443, AuthKey: randomKey(), FormatVersion: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.codec.Encode(tt.d)
			require.NoError(t, err)

			got, err := tt.codec.Decode(raw)
			require.NoError(t, err)
			want := tt.d.Clone()
			want.Format = tt.codec.Format()
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := tt.codec.Encode(got)
			require.NoError(t, err)
			assert.Equal(t, raw, again)
		})
	}
}

func TestPyrogramDecodeScenario(t *testing.T) {
	d, err := sessionconv.PyrogramCodec{}.Decode(compact(1, 2, true, zeroKey()))
	require.NoError(t, err)

	assert.Equal(t, &sessionconv.Descriptor{
		DataCenterID:    2,
		TestEnvironment: true,
		AuthKey:         zeroKey(),
		FormatVersion:   1,
		Format:          sessionconv.FormatPyrogram,
	}, d)
	assert.False(t, d.HasAddress())
}

func TestPyrogramAcceptsPadding(t *testing.T) {
	raw := compact(1, 3, false, zeroKey())
	for len(raw)%4 != 0 {
		raw += "="
	}

	d, err := sessionconv.PyrogramCodec{}.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, d.DataCenterID)
}

func TestPyrogramPicksVersion(t *testing.T) {
	tests := []struct {
		d    *sessionconv.Descriptor
		size int
	}{
		{&sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey()}, 259},
		{&sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey(), UserID: 1}, 268},
		{&sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey(), IsBot: true}, 268},
		{&sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey(), AppID: 6}, 272},
	}

	for _, tt := range tests {
		raw, err := sessionconv.PyrogramCodec{}.Encode(tt.d)
		require.NoError(t, err)

		buf, err := base64.RawURLEncoding.DecodeString(raw)
		require.NoError(t, err)
		assert.Len(t, buf, tt.size)
		assert.NotContains(t, raw, "=")
	}
}

func TestTelethonLayout(t *testing.T) {
	raw, err := sessionconv.TelethonCodec{}.Encode(&sessionconv.Descriptor{
		DataCenterID:  2,
		ServerAddress: "149.154.167.40",
		ServerPort:    443,
		AuthKey:       zeroKey(),
	})
	require.NoError(t, err)
	assert.Equal(t, verbose(2, "149.154.167.40", 443, zeroKey()), raw)
}

func TestShortKeyIsMalformed(t *testing.T) {
	short := make([]byte, sessionconv.AuthKeySize-1)

	tests := []struct {
		name  string
		codec sessionconv.Codec
		raw   string
	}{
		{"pyrogram v1", sessionconv.PyrogramCodec{}, compact(1, 2, false, short)},
		{"pyrogram v2", sessionconv.PyrogramCodec{}, compact(2, 2, false, short, 0, 0, 0, 0, 0, 0, 0, 1, 0)},
		{"telethon", sessionconv.TelethonCodec{}, verbose(2, "149.154.167.40", 443, short)},
		{"telethon empty key", sessionconv.TelethonCodec{}, verbose(2, "149.154.167.40", 443, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.raw)
			require.ErrorIs(t, err, sessionconv.ErrMalformedSession)
			assert.Equal(t, sessionconv.KindMalformedSession, sessionconv.KindOf(err))
		})
	}

	_, err := sessionconv.TelethonCodec{}.Decode(verbose(2, "149.154.167.40", 443, short))
	var e *sessionconv.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "authorization key", e.Field)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		codec sessionconv.Codec
		raw   string
		kind  sessionconv.Kind
		field string
	}{
		{"pyrogram alphabet", sessionconv.PyrogramCodec{}, "!!!!", sessionconv.KindMalformedSession, "encoding"},
		{"pyrogram empty", sessionconv.PyrogramCodec{}, "", sessionconv.KindMalformedSession, "version"},
		{"pyrogram version", sessionconv.PyrogramCodec{}, compact(9, 2, false, zeroKey()), sessionconv.KindUnsupportedVersion, "version"},
		{"pyrogram bool", sessionconv.PyrogramCodec{}, base64.RawURLEncoding.EncodeToString(append([]byte{1, 2, 7}, zeroKey()...)), sessionconv.KindMalformedSession, "test mode"},
		{"pyrogram trailing", sessionconv.PyrogramCodec{}, compact(1, 2, false, zeroKey(), 0), sessionconv.KindMalformedSession, "length"},
		{"telethon version", sessionconv.TelethonCodec{}, "2" + verbose(2, "149.154.167.40", 443, zeroKey())[1:], sessionconv.KindUnsupportedVersion, "version"},
		{"telethon alphabet", sessionconv.TelethonCodec{}, "1@@@@", sessionconv.KindMalformedSession, "encoding"},
		{"telethon empty", sessionconv.TelethonCodec{}, "", sessionconv.KindMalformedSession, "version"},
		{"telethon no address", sessionconv.TelethonCodec{}, verbose(2, "", 443, zeroKey()), sessionconv.KindMalformedSession, "server address"},
		{"telethon no port", sessionconv.TelethonCodec{}, verbose(2, "149.154.167.40", 0, zeroKey()), sessionconv.KindMalformedSession, "server port"},
		{"telethon trailing", sessionconv.TelethonCodec{}, verbose(2, "149.154.167.40", 443, append(zeroKey(), 1)), sessionconv.KindMalformedSession, "trailing data"},
		{"gogram prefix", sessionconv.GogramCodec{}, "2XyZAAAA", sessionconv.KindUnsupportedVersion, "version"},
		{"gogram alphabet", sessionconv.GogramCodec{}, "1BvX!!!!", sessionconv.KindMalformedSession, "encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.raw)
			require.Error(t, err)

			var e *sessionconv.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.codec.Format(), e.Format)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		codec sessionconv.Codec
		d     *sessionconv.Descriptor
		kind  sessionconv.Kind
	}{
		{"missing key", sessionconv.PyrogramCodec{}, &sessionconv.Descriptor{DataCenterID: 2}, sessionconv.KindIncompleteSession},
		{"short key", sessionconv.PyrogramCodec{}, &sessionconv.Descriptor{DataCenterID: 2, AuthKey: []byte{1}}, sessionconv.KindMalformedSession},
		{"dc out of range", sessionconv.PyrogramCodec{}, &sessionconv.Descriptor{DataCenterID: 300, AuthKey: zeroKey()}, sessionconv.KindMalformedSession},
		{"pyrogram version", sessionconv.PyrogramCodec{}, &sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey(), FormatVersion: 7}, sessionconv.KindUnsupportedVersion},
		{"telethon no address", sessionconv.TelethonCodec{}, &sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey()}, sessionconv.KindIncompleteSession},
		{"telethon version", sessionconv.TelethonCodec{}, &sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey(), ServerAddress: "1.1.1.1", ServerPort: 443, FormatVersion: 3}, sessionconv.KindUnsupportedVersion},
		{"gogram no address", sessionconv.GogramCodec{}, &sessionconv.Descriptor{DataCenterID: 2, AuthKey: zeroKey()}, sessionconv.KindIncompleteSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Encode(tt.d)
			require.Error(t, err)
			assert.Equal(t, tt.kind, sessionconv.KindOf(err))
		})
	}
}

func TestErrorString(t *testing.T) {
	err := &sessionconv.Error{
		Kind:   sessionconv.KindMalformedSession,
		Format: sessionconv.FormatPyrogram,
		Field:  "authorization key",
		Err:    assert.AnError,
	}
	assert.Equal(t, "[MALFORMED_SESSION] pyrogram: authorization key: "+assert.AnError.Error(), err.Error())
	assert.Equal(t, "[UNKNOWN_FORMAT]", sessionconv.ErrUnknownFormat.Error())

	assert.ErrorIs(t, err, sessionconv.ErrMalformedSession)
	assert.NotErrorIs(t, err, sessionconv.ErrIncompleteSession)
	assert.ErrorIs(t, err, assert.AnError)
}
