// Copyright (c) 2024 RoseLoverX

package session

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amarnathcjd/sessionconv/internal/utils"
)

const (
	// StringPrefix opens every gogram string session; it doubles as the layout version.
	StringPrefix = "1BvX"

	AuthKeySize     = 256
	AuthKeyHashSize = 8

	separator = "::"
)

var (
	ErrInvalidSession = fmt.Errorf("the session string is invalid/has been tampered with")
	ErrUnknownPrefix  = fmt.Errorf("unknown string session prefix")
)

// DecodeError tells which part of a string session could not be parsed.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &DecodeError{Field: field, Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidSession}, args...)...)}
}

type StringSession struct {
	authKey     []byte
	authKeyHash []byte
	dcID        int
	ipAddr      string
	appID       int32
}

// NewStringSession builds a session; the key hash is derived from authKey.
func NewStringSession(authKey []byte, dcID int, ipAddr string, appID int32) *StringSession {
	return &StringSession{
		authKey:     authKey,
		authKeyHash: utils.AuthKeyHash(authKey),
		dcID:        dcID,
		ipAddr:      ipAddr,
		appID:       appID,
	}
}

func NewEmptyStringSession() *StringSession {
	return &StringSession{}
}

func (s StringSession) AuthKey() []byte {
	return s.authKey
}

func (s StringSession) AuthKeyHash() []byte {
	return s.authKeyHash
}

func (s StringSession) DcID() int {
	return s.dcID
}

// IpAddr is the host:port the session is bound to.
func (s StringSession) IpAddr() string {
	return s.ipAddr
}

func (s StringSession) AppID() int32 {
	return s.appID
}

// Encode renders the session. App ids that are not valid runes cannot be stored and
// are written as 0.
func (s *StringSession) Encode() string {
	appID := rune(s.appID)
	if !utf8.ValidRune(appID) {
		appID = 0
	}

	sessionContents := []string{
		string(s.authKey),
		string(s.authKeyHash),
		s.ipAddr,
		string(rune(s.dcID)),
		string(appID),
	}
	return StringPrefix + base64.RawURLEncoding.EncodeToString([]byte(strings.Join(sessionContents, separator)))
}

// Decode parses encoded into s. The key and its hash have fixed sizes and are read by
// position; the dc id and app id runes are read from the end, so an IPv6 host containing
// "::" is not mistaken for a separator.
func (s *StringSession) Decode(encoded string) error {
	if !strings.HasPrefix(encoded, StringPrefix) {
		if len(encoded) < len(StringPrefix) {
			return invalid("prefix", "string too short")
		}
		return &DecodeError{Field: "prefix", Err: fmt.Errorf("%w %q", ErrUnknownPrefix, encoded[:len(StringPrefix)])}
	}

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded[len(StringPrefix):], "="))
	if err != nil {
		return invalid("encoding", "%v", err)
	}

	const head = AuthKeySize + len(separator) + AuthKeyHashSize + len(separator)
	if len(decoded) < head {
		return invalid("authorization key", "want %d bytes, got %d", head, len(decoded))
	}
	if string(decoded[AuthKeySize:AuthKeySize+len(separator)]) != separator {
		return invalid("authorization key", "key is not %d bytes long", AuthKeySize)
	}
	if string(decoded[head-len(separator):head]) != separator {
		return invalid("authorization key hash", "hash is not %d bytes long", AuthKeyHashSize)
	}

	key := decoded[:AuthKeySize]
	hash := decoded[AuthKeySize+len(separator) : head-len(separator)]
	if !bytes.Equal(hash, utils.AuthKeyHash(key)) {
		return invalid("authorization key hash", "hash does not match the key")
	}

	rest := string(decoded[head:])
	appID, rest, err := popLastRune(rest, "app id")
	if err != nil {
		return err
	}
	dcID, rest, err := popLastRune(rest, "dc id")
	if err != nil {
		return err
	}
	if rest == "" {
		return invalid("address", "empty address")
	}

	s.authKey = append([]byte(nil), key...)
	s.authKeyHash = append([]byte(nil), hash...)
	s.ipAddr = rest
	s.dcID = int(dcID)
	s.appID = int32(appID)
	return nil
}

func popLastRune(s, field string) (rune, string, error) {
	r, size := utf8.DecodeLastRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, "", invalid(field, "not a valid rune")
	}
	s = s[:len(s)-size]
	if !strings.HasSuffix(s, separator) {
		return 0, "", invalid(field, "missing separator")
	}
	return r, strings.TrimSuffix(s, separator), nil
}
