package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieValueEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		wire string
	}{
		{"json array", `[{"name":"Ann Lee"}]`, "%5B%7B%22name%22%3A%22Ann%20Lee%22%7D%5D"},
		{"base64 token", "eyJlbWFpbCI6ImEifQ==", "eyJlbWFpbCI6ImEifQ%3D%3D"},
		{"plain", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeCookieValue(tt.in)
			assert.Equal(t, tt.wire, got)
			assert.Equal(t, tt.in, DecodeCookieValue(got))
		})
	}
}

func TestDecodeCookieValue_Invalid(t *testing.T) {
	assert.Equal(t, "100%", DecodeCookieValue("100%"))
}

func TestCookieStore_ReadsRequestCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "currentUser", Value: EncodeCookieValue(`{"name":"Ann Lee"}`)})
	s := NewCookieStore(httptest.NewRecorder(), req, DefaultCookieOptions())

	v, ok, err := s.Get(context.Background(), "currentUser")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"name":"Ann Lee"}`, v)

	_, ok, err = s.Get(context.Background(), "userToken")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCookieStore_SetWritesHeaderAndIsVisible(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	s := NewCookieStore(rec, req, DefaultCookieOptions())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(context.Background(), "userToken", "tok==", 7*24*time.Hour))

	v, ok, err := s.Get(context.Background(), "userToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok==", v)

	c := findCookie(t, rec, "userToken")
	assert.Equal(t, "tok%3D%3D", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 7*24*3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestCookieStore_SetWithoutTTLIsPersistent(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewCookieStore(rec, httptest.NewRequest(http.MethodPost, "/signup", nil), DefaultCookieOptions())

	require.NoError(t, s.Set(context.Background(), "users", "[]", 0))

	c := findCookie(t, rec, "users")
	assert.Equal(t, int(persistentCookieAge.Seconds()), c.MaxAge)
}

func TestCookieStore_Delete(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "userToken", Value: "tok"})
	req.AddCookie(&http.Cookie{Name: "currentUser", Value: "u"})
	s := NewCookieStore(rec, req, DefaultCookieOptions())

	require.NoError(t, s.Delete(context.Background(), "userToken", "currentUser"))

	for _, name := range []string{"userToken", "currentUser"} {
		_, ok, err := s.Get(context.Background(), name)
		require.NoError(t, err)
		assert.False(t, ok, name)

		c := findCookie(t, rec, name)
		assert.Less(t, c.MaxAge, 0, name)
	}
}
