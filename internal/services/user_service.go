package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"meubolso/internal/auth"
	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
)

// userService handles account-related business logic.
type userService struct {
	db     *gorm.DB
	hasher auth.SecretHasher
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, hasher auth.SecretHasher) UserServicer {
	return &userService{db: db, hasher: hasher}
}

// Register creates a new user with a hashed credential secret.
func (s *userService) Register(name, email, secret string, monthlySalary decimal.Decimal) (*models.User, error) {
	if name == "" || email == "" || secret == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome, email and senha_hash are required")
	}
	if monthlySalary.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:          name,
		Email:         strings.ToLower(email),
		PasswordHash:  hash,
		MonthlySalary: monthlySalary.Round(2),
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// Authenticate checks an email/secret pair. Unknown email and wrong secret
// produce the same generic error.
func (s *userService) Authenticate(email, secret string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !s.hasher.Verify(secret, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetByID retrieves a user by ID.
func (s *userService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateProfile applies the provided fields only.
func (s *userService) UpdateProfile(id uint, update UserUpdate) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome must not be empty")
		}
		updates["nome"] = *update.Name
	}
	if update.Email != nil {
		email := strings.ToLower(*update.Email)
		if email == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email must not be empty")
		}
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateEmail
		}
		updates["email"] = email
	}
	if update.MonthlySalary != nil {
		if update.MonthlySalary.IsNegative() {
			return nil, apperrors.ErrNegativeAmount
		}
		updates["salario_mensal"] = update.MonthlySalary.Round(2)
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}

// Delete removes the user and everything the user owns in one transaction.
func (s *userService) Delete(id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.FixedBill{},
			&models.Installment{},
			&models.DailyEntry{},
			&models.FinancialSummary{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ensureUserExists returns ErrUserNotFound when the user ID does not resolve.
func ensureUserExists(db *gorm.DB, userID uint) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
