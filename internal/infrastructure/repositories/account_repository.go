package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID            uint   `gorm:"primaryKey"`
	FullName      string `gorm:"size:255"`
	Email         string `gorm:"uniqueIndex;size:255"`
	PhoneNumber   string `gorm:"index;size:32"`
	PasswordHash  string `gorm:"column:password"`
	Role          string `gorm:"index;size:32"`
	EmailVerified bool   `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepositoryImpl {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository. Emails are stored lower-case.
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	row := accountToDB(account)
	row.Email = normalizeEmail(row.Email)

	var existing int64
	if err := r.db.WithContext(ctx).Model(&DBAccount{}).Where("email = ?", row.Email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return domain.ErrUserAlreadyExists
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	account.ID = row.ID
	account.Email = row.Email
	account.CreatedAt = row.CreatedAt
	account.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var row DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return accountToDomain(&row), nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var row DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return accountToDomain(&row), nil
}

// MarkEmailVerified implements domain.AccountRepository
func (r *AccountRepositoryImpl) MarkEmailVerified(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("email_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func accountToDB(a *domain.Account) *DBAccount {
	return &DBAccount{
		ID:            a.ID,
		FullName:      a.FullName,
		Email:         a.Email,
		PhoneNumber:   a.PhoneNumber,
		PasswordHash:  a.PasswordHash,
		Role:          string(a.Role),
		EmailVerified: a.EmailVerified,
	}
}

func accountToDomain(row *DBAccount) *domain.Account {
	return &domain.Account{
		ID:            row.ID,
		FullName:      row.FullName,
		Email:         row.Email,
		PhoneNumber:   row.PhoneNumber,
		PasswordHash:  row.PasswordHash,
		Role:          domain.Role(row.Role),
		EmailVerified: row.EmailVerified,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

var _ domain.AccountRepository = (*AccountRepositoryImpl)(nil)
