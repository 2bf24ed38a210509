package errreport

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/khoahotran/skillmatch/pkg/logger"
)

// Reporter forwards server-side failures to Sentry. A nil or disabled Reporter drops everything.
type Reporter struct {
	enabled bool
}

func NewSentryReporter(dsn, environment string, log logger.Logger) *Reporter {
	if dsn == "" {
		log.Info("SENTRY_DSN not set, error reporting disabled")
		return &Reporter{}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		log.Error("Sentry initialization failed", err)
		return &Reporter{}
	}

	log.Info("Sentry initialized successfully")
	return &Reporter{enabled: true}
}

func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Capture sends err with the given tags in its own scope.
func (r *Reporter) Capture(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}
