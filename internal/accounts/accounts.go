// Package accounts implements the signup and login flows on top of the
// per-browser session store.
//
// Passwords are validated for shape on signup and never stored or compared:
// login succeeds for any registered email. The flow only drives what the UI
// shows and must not be treated as authentication.
package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/edutor/internal/logging"
	"github.com/dmitrijs2005/edutor/internal/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Where the browser goes after a successful flow.
const (
	RedirectLogin     = "/login"
	RedirectDashboard = "/dashboard"
)

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

// Result is a successful flow outcome.
type Result struct {
	User     session.UserRecord
	Redirect string
}

// Service runs the flows. It holds no per-browser state; the session store
// is passed per call.
type Service struct {
	logger logging.Logger
	tracer trace.Tracer
}

func NewService(logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		logger: logger.With("module", "accounts"),
		tracer: otel.Tracer("github.com/dmitrijs2005/edutor/internal/accounts"),
	}
}

// Signup validates in and appends a new user to the registry. It does not
// start a session. Nothing is written when validation fails.
func (s *Service) Signup(ctx context.Context, store *session.Store, in SignupInput) (res *Result, err error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Signup")
	defer func() { endSpan(span, err) }()

	if err := check(in, signupRules); err != nil {
		s.logger.Info(ctx, "signup rejected", "rule", err.(*ValidationError).Rule)
		return nil, err
	}

	email := strings.ToLower(in.Email)
	span.SetAttributes(attribute.String("user.email", email))

	if findUser(store.LoadRegistry(ctx), email) != nil {
		s.logger.Info(ctx, "signup rejected", "rule", RuleEmailUnique, "email", email)
		return nil, errEmailTaken
	}

	user := session.UserRecord{
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		CreatedAt: store.Now().UTC().Truncate(time.Millisecond),
	}
	if err := store.AppendUser(ctx, user); err != nil {
		s.logger.Error(ctx, "signup failed", "email", email, "error", err)
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return &Result{User: user, Redirect: RedirectLogin}, nil
}

// Login looks the email up in the registry and starts a session for the
// stored record.
func (s *Service) Login(ctx context.Context, store *session.Store, in LoginInput) (res *Result, err error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Login")
	defer func() { endSpan(span, err) }()

	if err := check(in, loginRules); err != nil {
		s.logger.Info(ctx, "login rejected", "rule", err.(*ValidationError).Rule)
		return nil, err
	}

	email := strings.ToLower(in.Email)
	span.SetAttributes(attribute.String("user.email", email))

	user := findUser(store.LoadRegistry(ctx), email)
	if user == nil {
		s.logger.Info(ctx, "login rejected", "rule", RuleEmailRegistered, "email", email)
		return nil, errNotRegistered
	}

	if _, err := store.StartSession(ctx, *user); err != nil {
		s.logger.Error(ctx, "login failed", "email", email, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info(ctx, "session started", "email", email)
	return &Result{User: *user, Redirect: RedirectDashboard}, nil
}

// Logout ends the session, if any.
func (s *Service) Logout(ctx context.Context, store *session.Store) error {
	ctx, span := s.tracer.Start(ctx, "accounts.Logout")
	err := store.EndSession(ctx)
	endSpan(span, err)
	if err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	return nil
}

func findUser(users []session.UserRecord, email string) *session.UserRecord {
	for i := range users {
		if strings.ToLower(users[i].Email) == email {
			return &users[i]
		}
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		if _, ok := IsValidation(err); ok {
			span.SetAttributes(attribute.String("validation.error", err.Error()))
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
