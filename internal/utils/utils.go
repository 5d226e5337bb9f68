// Copyright (c) 2024 RoseLoverX

package utils

import (
	cr "crypto/rand"
	"crypto/sha1"
	"encoding/hex"
)

// AuthKeyHash is the 8 byte identifier MTProto derives from an authorization key.
func AuthKeyHash(key []byte) []byte {
	return Sha1Byte(key)[12:20]
}

// AuthKeyID renders AuthKeyHash as hex, which is safe to print where the key itself is not.
func AuthKeyID(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	return hex.EncodeToString(AuthKeyHash(key))
}

func Sha1Byte(input []byte) []byte {
	r := sha1.Sum(input)
	return r[:]
}

func RandomBytes(size int) []byte {
	b := make([]byte, size)
	_, _ = cr.Read(b)
	return b
}
