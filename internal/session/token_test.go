package session

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/edutor/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestPlainCodec_WireFormat(t *testing.T) {
	tok, err := PlainCodec{}.Encode(TokenClaims{Email: "ann@x.io", IssuedAt: issued})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ann@x.io","timestamp":1714564800000}`, string(raw))

	got, err := PlainCodec{}.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", got.Email)
	assert.True(t, got.IssuedAt.Equal(issued))
}

func TestPlainCodec_DecodeGarbage(t *testing.T) {
	for _, tok := range []string{"%%%", base64.StdEncoding.EncodeToString([]byte("not json"))} {
		_, err := PlainCodec{}.Decode(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, tok)
	}
	assert.False(t, PlainCodec{}.Signed())
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	c := NewJWTCodec([]byte("secretKey"), 7*24*time.Hour)
	c.SetClock(func() time.Time { return issued.Add(time.Hour) })

	tok, err := c.Encode(TokenClaims{Email: "ann@x.io", IssuedAt: issued})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))

	got, err := c.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", got.Email)
	assert.True(t, got.IssuedAt.Equal(issued))
	assert.True(t, c.Signed())
}

func TestJWTCodec_Expired(t *testing.T) {
	c := NewJWTCodec([]byte("secretKey"), 7*24*time.Hour)
	tok, err := c.Encode(TokenClaims{Email: "ann@x.io", IssuedAt: issued})
	require.NoError(t, err)

	c.SetClock(func() time.Time { return issued.Add(8 * 24 * time.Hour) })
	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestJWTCodec_RejectsTampering(t *testing.T) {
	c := NewJWTCodec([]byte("secretKey"), time.Hour)
	c.SetClock(func() time.Time { return issued })
	tok, err := c.Encode(TokenClaims{Email: "ann@x.io", IssuedAt: issued})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"eve@x.io","timestamp":1714564800000}`))
	tampered := parts[0] + "." + forged + "." + parts[2]

	tests := map[string]string{
		"payload edited": tampered,
		"malformed":      "not.a.jwt",
		"plain token":    base64.StdEncoding.EncodeToString([]byte(`{"email":"ann@x.io"}`)),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(tok)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}

	other := NewJWTCodec([]byte("other"), time.Hour)
	other.SetClock(func() time.Time { return issued })
	_, err = other.Decode(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
