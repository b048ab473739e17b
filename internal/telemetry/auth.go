package telemetry

import (
	"context"
	"time"

	"github.com/heliowatt/opsportal/internal/directory"
)

// Authenticator matches the directory client's login entrypoint.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*directory.Entry, error)
}

// instrumentedAuthenticator wraps an Authenticator and records login metrics
// around every attempt.
type instrumentedAuthenticator struct {
	inner   Authenticator
	metrics *AuthMetrics
}

// InstrumentAuthenticator decorates the directory client with login metrics.
// A nil metrics handle returns the inner authenticator unchanged.
func InstrumentAuthenticator(inner Authenticator, metrics *AuthMetrics) Authenticator {
	if metrics == nil {
		return inner
	}
	return &instrumentedAuthenticator{inner: inner, metrics: metrics}
}

func (a *instrumentedAuthenticator) Authenticate(ctx context.Context, username, password string) (*directory.Entry, error) {
	start := time.Now()
	entry, err := a.inner.Authenticate(ctx, username, password)
	a.metrics.RecordAuth(ctx, err == nil, float64(time.Since(start).Milliseconds()))
	return entry, err
}
