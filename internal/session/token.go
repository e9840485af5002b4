package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/edutor/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what a session token is derived from.
type TokenClaims struct {
	Email    string
	IssuedAt time.Time
}

// TokenCodec turns claims into the opaque userToken value and back.
type TokenCodec interface {
	Encode(c TokenClaims) (string, error)
	Decode(token string) (TokenClaims, error)

	// Signed reports whether Decode detects tokens edited by the client.
	// Only signed tokens are checked when reading the current session.
	Signed() bool
}

// PlainCodec is base64(JSON{"email","timestamp"}) with the timestamp in unix
// milliseconds. It is readable by anyone and proves nothing.
type PlainCodec struct{}

type plainPayload struct {
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
}

func (PlainCodec) Encode(c TokenClaims) (string, error) {
	b, err := json.Marshal(plainPayload{Email: c.Email, Timestamp: c.IssuedAt.UnixMilli()})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (PlainCodec) Decode(token string) (TokenClaims, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return TokenClaims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	var p plainPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return TokenClaims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return TokenClaims{Email: p.Email, IssuedAt: time.UnixMilli(p.Timestamp).UTC()}, nil
}

func (PlainCodec) Signed() bool { return false }

// JWTCodec signs the same two claims with HS256.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
}

// NewJWTCodec returns a codec whose tokens expire ttl after they are issued.
func NewJWTCodec(secret []byte, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: secret, ttl: ttl, now: time.Now}
}

// SetClock replaces the time source used to validate expiry.
func (c *JWTCodec) SetClock(now func() time.Time) {
	c.now = now
}

func (c *JWTCodec) Encode(tc TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tc.Email,
			IssuedAt:  jwt.NewNumericDate(tc.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(tc.IssuedAt.Add(c.ttl)),
		},
		Email:     tc.Email,
		Timestamp: tc.IssuedAt.UnixMilli(),
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return s, nil
}

func (c *JWTCodec) Decode(token string) (TokenClaims, error) {
	claims := &jwtClaims{}

	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, common.ErrTokenExpired
		}
		return TokenClaims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !t.Valid {
		return TokenClaims{}, common.ErrInvalidToken
	}

	return TokenClaims{Email: claims.Email, IssuedAt: time.UnixMilli(claims.Timestamp).UTC()}, nil
}

func (c *JWTCodec) Signed() bool { return true }
