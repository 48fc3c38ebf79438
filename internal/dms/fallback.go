package dms

import (
	"context"
	"errors"
)

// Mode is the operating mode of the data source. The transition is one-way:
// once fallen back, the remote service is not attempted again for the rest
// of the session.
type Mode int

const (
	ModeLive Mode = iota
	ModeFallenBack
)

func (m Mode) String() string {
	if m == ModeFallenBack {
		return "fallen-back"
	}
	return "live"
}

// Mode returns the current operating mode.
func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// fallBack engages mock mode permanently. Idempotent.
func (s *Service) fallBack(op string, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeFallenBack {
		return
	}
	s.mode = ModeFallenBack
	s.logger.Warn("remote service unavailable, falling back to simulated store",
		"op", op, "cause", cause)
}

// qualifiesForFallback reports whether an error indicates the remote service
// is unavailable (rather than rejecting this particular request): a
// transport failure with no response, an authentication rejection (401), or
// any server error (>= 500). Everything else — 400, 403, 404, 409, 422,
// client-side validation — propagates to the caller.
func qualifiesForFallback(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status == 401 || se.Status >= 500
	}
	var te *TransportError
	return errors.As(err, &te)
}

// run is the uniform two-branch shape of every data-source operation:
// serve from the store if already fallen back, otherwise try the remote
// call and fall back permanently on a qualifying failure. Store errors
// propagate as-is — there is no retry behind the store.
func run[T any](ctx context.Context, s *Service, op string, remoteCall func(context.Context) (T, error), storeCall func() (T, error)) (T, error) {
	var zero T

	if s.Mode() == ModeFallenBack {
		if err := s.sleeper.Sleep(ctx); err != nil {
			return zero, err
		}
		return storeCall()
	}

	v, err := remoteCall(ctx)
	if err == nil {
		return v, nil
	}
	if !qualifiesForFallback(err) {
		return zero, err
	}

	s.fallBack(op, err)
	if err := s.sleeper.Sleep(ctx); err != nil {
		return zero, err
	}
	return storeCall()
}

// runVoid adapts run for operations without a result.
func runVoid(ctx context.Context, s *Service, op string, remoteCall func(context.Context) error, storeCall func() error) error {
	_, err := run(ctx, s, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, remoteCall(ctx) },
		func() (struct{}, error) { return struct{}{}, storeCall() },
	)
	return err
}
