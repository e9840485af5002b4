package storage

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/edutor/internal/common"
	"github.com/google/uuid"
)

const deviceCookieAge = 400 * 24 * time.Hour

// Resolver returns the Store belonging to the browser that sent r.
type Resolver func(w http.ResponseWriter, r *http.Request) Store

// CookieResolver keeps every key in the browser's own cookies.
func CookieResolver(opts CookieOptions) Resolver {
	return func(w http.ResponseWriter, r *http.Request) Store {
		return NewCookieStore(w, r, opts)
	}
}

// DeviceResolver scopes a server-side backend by the device id cookie,
// issuing a fresh UUID to browsers that don't have one yet.
func DeviceResolver(b Backend, opts CookieOptions) Resolver {
	return func(w http.ResponseWriter, r *http.Request) Store {
		return Scoped(b, DeviceID(w, r, opts))
	}
}

// DeviceID returns the browser's device id, setting the cookie when it is
// missing or not a UUID.
func DeviceID(w http.ResponseWriter, r *http.Request, opts CookieOptions) string {
	if ck, err := r.Cookie(common.DeviceCookieName); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     common.DeviceCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(deviceCookieAge.Seconds()),
		Expires:  time.Now().Add(deviceCookieAge),
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: opts.SameSite,
	})
	// later reads of r in the same request see the new id
	r.AddCookie(&http.Cookie{Name: common.DeviceCookieName, Value: id})
	return id
}
