package common

import "time"

// Storage keys shared with the original browser site. Changing them orphans
// every session and registry already stored in visitors' browsers.
const (
	UsersKey       = "users"
	UserTokenKey   = "userToken"
	CurrentUserKey = "currentUser"
)

// DeviceCookieName carries the per-browser id that scopes server-side storage.
const DeviceCookieName = "device_id"

// DefaultSessionTTL is how long userToken and currentUser live.
const DefaultSessionTTL = 7 * 24 * time.Hour
