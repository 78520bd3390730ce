package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalter/cardcrawl"
)

// Ensure LoggingSession implements cardcrawl.Session.
var _ cardcrawl.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with debug logging of every browser
// interaction.
type LoggingSession struct {
	next   cardcrawl.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next cardcrawl.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// Eval delegates to the wrapped session and logs the outcome.
func (s *LoggingSession) Eval(ctx context.Context, js string) (ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("eval",
			"ok", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Eval(ctx, js)
}

// Elements delegates to the wrapped session and logs the match count.
func (s *LoggingSession) Elements(ctx context.Context, selector string) (els []cardcrawl.Element, err error) {
	defer func() {
		s.logger.Debug("elements",
			"selector", selector,
			"count", len(els),
			"err", err,
		)
	}()
	return s.next.Elements(ctx, selector)
}

// HTML delegates to the wrapped session and logs the content size.
func (s *LoggingSession) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HTML(ctx)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
