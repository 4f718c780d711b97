package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// Codes are keyed by the signup email.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	accounts        domain.AccountRepository
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notificationSvc domain.NotificationService, accounts domain.AccountRepository, redisClient *redis.Client, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		accounts:        accounts,
		redisClient:     redisClient,
		config:          config,
	}
}

func otpKeys(email string) (code, attempts, resend string) {
	return "otp:" + email, "otp:att:" + email, "otp:res:" + email
}

// Generate implements domain.OTPService. The code goes to the account's
// email, and by SMS when the account has a phone number.
func (s *OTPServiceImpl) Generate(ctx context.Context, email string) (*domain.OTPRequest, error) {
	otpKey, attemptsKey, resendKey := otpKeys(email)

	canResend, waitTime, err := s.CanResend(ctx, email)
	if err != nil {
		return nil, err
	}
	if !canResend {
		return nil, fmt.Errorf("%w: please wait %d seconds before requesting a new code", domain.ErrOTPResendLimit, waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpKey, code, s.config.TTL)
		pipe.Set(ctx, attemptsKey, 0, s.config.TTL)
		pipe.Set(ctx, resendKey, 1, s.config.ResendWindow)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	minutes := int(s.config.TTL.Minutes())
	body := fmt.Sprintf("Your Mess Milega verification code is: %s. Valid for %d minutes.", code, minutes)
	if err := s.notificationSvc.SendEmail(email, "Verify your Mess Milega account", body); err != nil {
		s.redisClient.Del(ctx, otpKey, attemptsKey, resendKey)
		return nil, fmt.Errorf("failed to send OTP email: %w", err)
	}

	if account, err := s.accounts.FindByEmail(ctx, email); err == nil && account.PhoneNumber != "" {
		if err := s.notificationSvc.SendSMS(account.PhoneNumber, body); err != nil {
			log.Printf("OTP_SMS_FAILED: user_id=%d error=%v", account.ID, err)
		}
	}

	return &domain.OTPRequest{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
		Attempts:  0,
	}, nil
}

// Verify implements domain.OTPService with Redis persistence
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) (bool, error) {
	otpKey, attemptsKey, _ := otpKeys(email)

	storedCode, err := s.redisClient.Get(ctx, otpKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, domain.ErrOTPNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	// Increment attempts counter atomically
	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, otpKey, attemptsKey)
		return false, domain.ErrOTPMaxAttempts
	}

	if storedCode != code {
		return false, domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, otpKey, attemptsKey)
	return true, nil
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, email string) (bool, int64, error) {
	_, _, resendKey := otpKeys(email)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
