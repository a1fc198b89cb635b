package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/procurechef/procurechef-backend/pkg/logger"
)

type quoteExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// QuoteExpiryJobParams configure the quote expiry sweep.
type QuoteExpiryJobParams struct {
	Logger *logger.Logger
	Quotes quoteExpirer
}

// NewQuoteExpiryJob builds the job that flips stale quotes to expired.
// Blanket quotes are exempt, the sweep only touches quotes whose validity
// window has passed.
func NewQuoteExpiryJob(params QuoteExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Quotes == nil {
		return nil, fmt.Errorf("quote service required")
	}
	return &quoteExpiryJob{
		logg:   params.Logger,
		quotes: params.Quotes,
		now:    time.Now,
	}, nil
}

type quoteExpiryJob struct {
	logg   *logger.Logger
	quotes quoteExpirer
	now    func() time.Time
}

func (j *quoteExpiryJob) Name() string { return "quote-expiry" }

func (j *quoteExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	expired, err := j.quotes.ExpireStale(ctx, now)
	if err != nil {
		return fmt.Errorf("quote expiry: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"as_of":        now,
		"rows_expired": expired,
	})
	j.logg.Info(logCtx, "quote expiry sweep complete")
	return nil
}
