package service

import (
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Тесты политики повторов отправки уведомлений
// ============================================================================

// timeoutError имитирует сетевой тайм-аут (net.Error)
type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

func TestResendRetryDelay_RateLimitHonorsRetryAfter(t *testing.T) {
	// Arrange
	err := &resend.RateLimitError{RetryAfter: "2"}

	// Act
	wait, retry := resendRetryDelay(err, 0)

	// Assert
	assert.True(t, retry)
	assert.Equal(t, 2*time.Second, wait)
}

func TestResendRetryDelay_RateLimitCapsRetryAfter(t *testing.T) {
	// Arrange: провайдер попросил ждать слишком долго
	err := &resend.RateLimitError{RetryAfter: "120"}

	// Act
	wait, retry := resendRetryDelay(err, 0)

	// Assert
	assert.True(t, retry)
	assert.Equal(t, 30*time.Second, wait)
}

func TestResendRetryDelay_NetworkTimeoutRetries(t *testing.T) {
	// Act
	wait, retry := resendRetryDelay(timeoutError{}, 1)

	// Assert
	assert.True(t, retry, "Тайм-ауты сети повторяем с нарастающей паузой")
	assert.Equal(t, time.Second, wait)
}

func TestResendRetryDelay_PermanentErrorDoesNotRetry(t *testing.T) {
	// Act
	_, retry := resendRetryDelay(errors.New("validation_error: invalid from address"), 0)

	// Assert
	assert.False(t, retry, "Постоянные ошибки не повторяем")
}
