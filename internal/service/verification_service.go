package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/quorum-api/internal/config"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// PhoneVerifier отправляет и проверяет SMS-коды подтверждения телефона
type PhoneVerifier interface {
	StartVerification(ctx context.Context, phone string) error
	CheckVerification(ctx context.Context, phone, code string) error
}

// NoopPhoneVerifier используется, когда SMS-провайдер не настроен.
// Возвращает ErrConfig: фича отключена, остальное приложение работает.
type NoopPhoneVerifier struct{}

func (v *NoopPhoneVerifier) StartVerification(ctx context.Context, phone string) error {
	return fmt.Errorf("%w: phone verification provider is not configured", apperrors.ErrConfig)
}

func (v *NoopPhoneVerifier) CheckVerification(ctx context.Context, phone, code string) error {
	return fmt.Errorf("%w: phone verification provider is not configured", apperrors.ErrConfig)
}

const twilioVerifyBaseURL = "https://verify.twilio.com/v2/Services"

// TwilioPhoneVerifier проверяет телефоны через Twilio Verify REST API.
// Сбои провайдера отображаются в ErrUpstream без повторных попыток:
// пользователь может запросить код заново сам.
type TwilioPhoneVerifier struct {
	baseURL          string
	accountSID       string
	authToken        string
	verifyServiceSID string
	httpClient       *http.Client
}

// NewTwilioPhoneVerifier создает верификатор из конфигурации.
// При неполных учетных данных возвращает ErrConfig.
func NewTwilioPhoneVerifier(cfg config.SMSConfig) (*TwilioPhoneVerifier, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.VerifyServiceSID == "" {
		return nil, fmt.Errorf("%w: SMS credentials are incomplete", apperrors.ErrConfig)
	}
	return &TwilioPhoneVerifier{
		baseURL:          twilioVerifyBaseURL,
		accountSID:       cfg.AccountSID,
		authToken:        cfg.AuthToken,
		verifyServiceSID: cfg.VerifyServiceSID,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// StartVerification запрашивает отправку SMS-кода на номер
func (v *TwilioPhoneVerifier) StartVerification(ctx context.Context, phone string) error {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", "sms")

	endpoint := fmt.Sprintf("%s/%s/Verifications", v.baseURL, v.verifyServiceSID)
	if err := v.post(ctx, endpoint, form); err != nil {
		return err
	}
	log.Printf("[PhoneVerifier] Код подтверждения отправлен на %s", phone)
	return nil
}

// CheckVerification проверяет введенный пользователем код.
// Неверный код - это ErrValidation, а не сбой провайдера.
func (v *TwilioPhoneVerifier) CheckVerification(ctx context.Context, phone, code string) error {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/%s/VerificationCheck", v.baseURL, v.verifyServiceSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	req.SetBasicAuth(v.accountSID, v.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: verification check request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: verification check returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	// Провайдер отвечает 200 и на неверный код; статус лежит в теле
	var check struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &check); err != nil {
		return fmt.Errorf("%w: verification check response is not valid JSON: %v", apperrors.ErrUpstream, err)
	}
	if check.Status != "approved" {
		return fmt.Errorf("%w: verification code is invalid or expired", apperrors.ErrValidation)
	}
	return nil
}

func (v *TwilioPhoneVerifier) post(ctx context.Context, endpoint string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	req.SetBasicAuth(v.accountSID, v.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: verification request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: verification provider returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}
	return nil
}
