// Package session keeps the user registry and the active session in a
// per-browser storage.Store.
//
// The registry lives under "users" with no expiry. A session is the pair
// "userToken" + "currentUser", both written with the session TTL. The
// session is present only when both values are.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/edutor/internal/common"
	"github.com/dmitrijs2005/edutor/internal/logging"
	"github.com/dmitrijs2005/edutor/internal/storage"
)

// UserRecord is one registered user. The JSON form matches the cookies the
// site has always written.
type UserRecord struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Initial is the upper-cased first letter of the name, for avatars.
func (u UserRecord) Initial() string {
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Session is the authenticated state read back from storage.
type Session struct {
	Token string
	User  UserRecord
}

// Options configure a Store. Zero values get defaults.
type Options struct {
	Codec  TokenCodec
	TTL    time.Duration
	Logger logging.Logger
	Now    func() time.Time
}

// Store reads and writes registry and session state for one browser.
type Store struct {
	st     storage.Store
	codec  TokenCodec
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time
}

func NewStore(st storage.Store, o Options) *Store {
	s := &Store{st: st, codec: o.Codec, ttl: o.TTL, logger: o.Logger, now: o.Now}
	if s.codec == nil {
		s.codec = PlainCodec{}
	}
	if s.ttl <= 0 {
		s.ttl = common.DefaultSessionTTL
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Now is the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// LoadRegistry returns the stored registry, or an empty one when nothing is
// stored or the stored value is unreadable. It never fails.
func (s *Store) LoadRegistry(ctx context.Context) []UserRecord {
	raw, ok, err := s.st.Get(ctx, common.UsersKey)
	if err != nil {
		s.logger.Error(ctx, "load registry", "error", err)
		return []UserRecord{}
	}
	if !ok || raw == "" {
		return []UserRecord{}
	}

	var users []UserRecord
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Warn(ctx, "registry is not valid JSON, treating as empty", "error", err)
		return []UserRecord{}
	}
	if users == nil {
		users = []UserRecord{}
	}
	return users
}

// AppendUser writes the registry with u added at the end.
func (s *Store) AppendUser(ctx context.Context, u UserRecord) error {
	users := append(s.LoadRegistry(ctx), u)

	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := s.st.Set(ctx, common.UsersKey, string(b), 0); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// StartSession issues a token for u and stores it together with a snapshot
// of u.
func (s *Store) StartSession(ctx context.Context, u UserRecord) (*Session, error) {
	token, err := s.codec.Encode(TokenClaims{Email: u.Email, IssuedAt: s.now()})
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	snapshot, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	if err := s.st.Set(ctx, common.UserTokenKey, token, s.ttl); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := s.st.Set(ctx, common.CurrentUserKey, string(snapshot), s.ttl); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &Session{Token: token, User: u}, nil
}

// CurrentSession returns the active session. It is absent when either value
// is missing, the user snapshot does not decode, or a signed token fails
// verification.
func (s *Store) CurrentSession(ctx context.Context) (*Session, bool) {
	token, ok, err := s.st.Get(ctx, common.UserTokenKey)
	if err != nil {
		s.logger.Error(ctx, "read token", "error", err)
		return nil, false
	}
	if !ok || token == "" {
		return nil, false
	}

	raw, ok, err := s.st.Get(ctx, common.CurrentUserKey)
	if err != nil {
		s.logger.Error(ctx, "read current user", "error", err)
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}

	var u UserRecord
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn(ctx, "current user is not valid JSON", "error", err)
		return nil, false
	}

	if s.codec.Signed() {
		claims, err := s.codec.Decode(token)
		if err != nil {
			s.logger.Info(ctx, "rejected session token", "error", err)
			return nil, false
		}
		if !strings.EqualFold(claims.Email, u.Email) {
			s.logger.Info(ctx, "session token does not match current user", "email", u.Email)
			return nil, false
		}
	}

	return &Session{Token: token, User: u}, true
}

// EndSession removes both session keys. It succeeds when there is no session.
func (s *Store) EndSession(ctx context.Context) error {
	if err := s.st.Delete(ctx, common.UserTokenKey, common.CurrentUserKey); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
