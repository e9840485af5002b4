package storage

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// persistentCookieAge is used for keys stored without expiry. Browsers cap
// cookie lifetime at 400 days.
const persistentCookieAge = 400 * 24 * time.Hour

// CookieOptions are applied to every cookie the store writes.
type CookieOptions struct {
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// DefaultCookieOptions suit a same-origin server-rendered site.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{Path: "/", HTTPOnly: true, SameSite: http.SameSiteLaxMode}
}

// CookieStore keeps values in the browser's cookie jar. It reads from the
// request and writes Set-Cookie headers to the response; writes made during
// the request are visible to later reads in the same request.
//
// A CookieStore belongs to one request and must not be shared.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    CookieOptions
	now     func() time.Time
	pending map[string]*string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	return &CookieStore{w: w, r: r, opts: opts, now: time.Now, pending: make(map[string]*string)}
}

func (c *CookieStore) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	ck, err := c.r.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", false, nil
	}
	return DecodeCookieValue(ck.Value), true, nil
}

func (c *CookieStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = persistentCookieAge
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    EncodeCookieValue(value),
		Path:     c.opts.Path,
		Expires:  c.now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   c.opts.Secure,
		HttpOnly: c.opts.HTTPOnly,
		SameSite: c.opts.SameSite,
	})
	v := value
	c.pending[key] = &v
	return nil
}

func (c *CookieStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		http.SetCookie(c.w, &http.Cookie{
			Name:     key,
			Value:    "",
			Path:     c.opts.Path,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   c.opts.Secure,
			HttpOnly: c.opts.HTTPOnly,
			SameSite: c.opts.SameSite,
		})
		c.pending[key] = nil
	}
	return nil
}

// EncodeCookieValue percent-encodes like JavaScript's encodeURIComponent,
// which is what js-cookie writes. The only difference is that !'()* are
// escaped too, and decodeURIComponent accepts that.
func EncodeCookieValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// DecodeCookieValue reverses EncodeCookieValue. Values that are not valid
// percent-encoding are returned unchanged.
func DecodeCookieValue(v string) string {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}
