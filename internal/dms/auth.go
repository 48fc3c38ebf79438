package dms

import (
	"context"
	"fmt"

	"dms-go/internal/model"
)

// Auth operations sit outside the fallback policy: against a live service an
// auth failure means bad credentials, not a degraded backend, so it
// propagates unchanged. Only a session that is already fallen back (or was
// forced into mock mode) authenticates against the seeded user table.

// Login authenticates with the remote service, or resolves the email against
// the simulated user directory in mock mode.
func (s *Service) Login(ctx context.Context, email, password string) (model.Session, error) {
	if email == "" || password == "" {
		return model.Session{}, fmt.Errorf("%w: email and password are required", model.ErrValidation)
	}

	if s.Mode() == ModeFallenBack {
		if err := s.sleeper.Sleep(ctx); err != nil {
			return model.Session{}, err
		}
		return s.mockSession(email)
	}

	sess, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return model.Session{}, err
	}
	s.SetActor(sess.User.ID)
	return sess, nil
}

// Register creates a new account with the remote service. Registration has
// no simulated counterpart: the mock user table is read-only reference data.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (model.Session, error) {
	if email == "" || fullName == "" || password == "" {
		return model.Session{}, fmt.Errorf("%w: email, full name and password are required", model.ErrValidation)
	}
	if s.Mode() == ModeFallenBack {
		return model.Session{}, fmt.Errorf("%w: registration is unavailable in simulated mode", model.ErrValidation)
	}

	sess, err := s.remote.Register(ctx, email, fullName, password)
	if err != nil {
		return model.Session{}, err
	}
	s.SetActor(sess.User.ID)
	return sess, nil
}

// Me returns the authenticated user for the held token.
func (s *Service) Me(ctx context.Context) (model.User, error) {
	if s.Mode() == ModeFallenBack {
		if err := s.sleeper.Sleep(ctx); err != nil {
			return model.User{}, err
		}
		if id := s.actor(); id != 0 {
			for _, u := range s.store.Users() {
				if u.ID == id {
					return u, nil
				}
			}
		}
		return model.User{}, fmt.Errorf("simulated session user: %w", model.ErrNotFound)
	}
	return s.remote.Me(ctx)
}

// mockSession resolves an email against the seeded user table and issues a
// synthetic token.
func (s *Service) mockSession(email string) (model.Session, error) {
	user, ok := s.store.FindUserByEmail(email)
	if !ok {
		return model.Session{}, fmt.Errorf("user %q in simulated directory: %w", email, model.ErrNotFound)
	}
	s.SetActor(user.ID)
	s.logger.Info("issued simulated session", "email", email, "role", user.Role)
	return model.Session{
		Token: "mock-session-" + s.idgen.New(),
		User:  user,
	}, nil
}
