package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accounts    domain.AccountRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
}

// NewAuthService creates a new auth service
func NewAuthService(
	accounts domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accounts:    accounts,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
	}
}

// Register implements domain.AuthService. The account starts unverified and
// a signup code is sent to its email.
func (s *AuthServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	form := domain.RegisterForm{
		Name:     req.FullName,
		Email:    req.Email,
		Phone:    req.PhoneNumber,
		Password: req.Password,
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := form.ValidatePassword(); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, req.Role)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.accounts.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if _, err := s.otpSvc.Generate(ctx, account.Email); err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	log.Printf("ACCOUNT_REGISTERED: user_id=%d role=%s", account.ID, account.Role)
	return account, nil
}

// VerifySignup implements domain.AuthService
func (s *AuthServiceImpl) VerifySignup(ctx context.Context, email, code string) error {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return nil
	}

	ok, err := s.otpSvc.Verify(ctx, account.Email, strings.TrimSpace(code))
	if err != nil {
		log.Printf("SIGNUP_VERIFY_FAILED: user_id=%d error=%v", account.ID, err)
		return err
	}
	if !ok {
		return domain.ErrOTPInvalid
	}

	if err := s.accounts.MarkEmailVerified(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	log.Printf("SIGNUP_VERIFIED: user_id=%d", account.ID)
	return nil
}

// ResendSignupCode implements domain.AuthService
func (s *AuthServiceImpl) ResendSignupCode(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return fmt.Errorf("%w: email is already verified", domain.ErrInvalidInput)
	}

	if _, err := s.otpSvc.Generate(ctx, account.Email); err != nil {
		return err
	}
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		log.Printf("LOGIN_FAILED: user_id=%d reason=password", account.ID)
		return nil, domain.ErrInvalidCredentials
	}

	if !account.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	log.Printf("LOGIN_SUCCEEDED: user_id=%d role=%s", account.ID, account.Role)
	return &domain.LoginResponse{
		AccessToken: accessToken,
		ID:          account.ID,
		FullName:    account.FullName,
		Email:       account.Email,
		Role:        account.Role,
	}, nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account.Profile(), nil
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
