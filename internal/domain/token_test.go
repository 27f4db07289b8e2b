package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/credjar/internal/domain"
)

func TestParseToken_RoundTrip(t *testing.T) {
	t.Parallel()

	var tok domain.Token
	for i := range tok {
		tok[i] = byte(i * 7)
	}

	parsed, err := domain.ParseToken(tok.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(tok))
	assert.Len(t, tok.String(), 2*domain.TokenSize)
}

func TestParseToken_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "too short", input: "abcd"},
		{name: "too long", input: strings.Repeat("a", 2*domain.TokenSize+2)},
		{name: "not hex", input: strings.Repeat("zz", domain.TokenSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.ParseToken(tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestTokenFromBytes(t *testing.T) {
	t.Parallel()

	_, err := domain.TokenFromBytes(make([]byte, domain.TokenSize-1))
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	raw := []byte(strings.Repeat("x", domain.TokenSize))
	tok, err := domain.TokenFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, tok.Bytes())

	// Bytes returns a copy
	b := tok.Bytes()
	b[0] = 'y'
	assert.Equal(t, byte('x'), tok.Bytes()[0])
}

func TestToken_Equal(t *testing.T) {
	t.Parallel()

	a := domain.Token{1, 2, 3}
	b := domain.Token{1, 2, 3}
	c := domain.Token{1, 2, 4}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, domain.Token{}.IsZero())
	assert.False(t, a.IsZero())
}

func FuzzParseToken(f *testing.F) {
	f.Add("")
	f.Add(strings.Repeat("0", 2*domain.TokenSize))
	f.Add(strings.Repeat("g", 2*domain.TokenSize))

	f.Fuzz(func(t *testing.T, s string) {
		tok, err := domain.ParseToken(s)
		if err != nil {
			return
		}
		// Accepted input must round-trip modulo hex case
		assert.Equal(t, strings.ToLower(s), tok.String())
	})
}
