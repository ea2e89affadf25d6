package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// ModerationNotifier уведомляет администраторов о жалобах на комментарии
type ModerationNotifier interface {
	NotifyCommentReported(ctx context.Context, commentID, questionID uint, commentText string) error
}

// NoopNotifier используется, когда email-уведомления не настроены
type NoopNotifier struct{}

func (s *NoopNotifier) NotifyCommentReported(ctx context.Context, commentID, questionID uint, commentText string) error {
	log.Printf("[Notifier] noop: жалоба на комментарий #%d (вопрос #%d)", commentID, questionID)
	return nil
}

// ResendNotifier отправляет уведомления модерации через Resend REST API
type ResendNotifier struct {
	from       string
	adminEmail string
	client     *resend.Client
}

func NewResendNotifier(apiKey, from, adminEmail string) (*ResendNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" || adminEmail == "" {
		return nil, fmt.Errorf("from and admin email are required")
	}
	return &ResendNotifier{
		from:       from,
		adminEmail: adminEmail,
		client:     resend.NewClient(apiKey),
	}, nil
}

func (s *ResendNotifier) NotifyCommentReported(ctx context.Context, commentID, questionID uint, commentText string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("Comment #%d reported", commentID),
		Text: fmt.Sprintf("Comment #%d on question #%d was reported.\n\nText:\n%s",
			commentID, questionID, commentText),
		Html: fmt.Sprintf("<p>Comment <strong>#%d</strong> on question #%d was reported.</p><blockquote>%s</blockquote>",
			commentID, questionID, commentText),
	}

	options := &resend.SendEmailOptions{
		// Одна жалоба - одно письмо, даже при ретраях
		IdempotencyKey: fmt.Sprintf("comment-report-%d", commentID),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
