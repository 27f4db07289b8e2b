package domain

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// TokenSize is the length in bytes of every issued cookie.
const TokenSize = 20

// Token is the opaque bearer value bound to a credential.
//
// Tokens are compared byte for byte. The zero Token is never produced by a
// healthy entropy source and is used by callers to mean "unset".
type Token [TokenSize]byte

// TokenFromBytes copies b into a Token. b must be exactly TokenSize bytes.
func TokenFromBytes(b []byte) (Token, error) {
	var t Token
	if len(b) != TokenSize {
		return t, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidToken, TokenSize, len(b))
	}
	copy(t[:], b)
	return t, nil
}

// ParseToken decodes the hex form produced by Token.String.
func ParseToken(s string) (Token, error) {
	var t Token
	if len(s) != hex.EncodedLen(TokenSize) {
		return t, fmt.Errorf("%w: want %d hex characters, got %d", ErrInvalidToken, hex.EncodedLen(TokenSize), len(s))
	}
	if _, err := hex.Decode(t[:], []byte(s)); err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return t, nil
}

// Equal reports whether t and other hold the same bytes. Runs in constant time.
func (t Token) Equal(other Token) bool {
	return subtle.ConstantTimeCompare(t[:], other[:]) == 1
}

// IsZero reports whether every byte of t is zero.
func (t Token) IsZero() bool {
	return t.Equal(Token{})
}

// String returns the lowercase hex encoding of t.
func (t Token) String() string {
	return hex.EncodeToString(t[:])
}

// Bytes returns a copy of the raw token bytes.
func (t Token) Bytes() []byte {
	b := make([]byte, TokenSize)
	copy(b, t[:])
	return b
}
