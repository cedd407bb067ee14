package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"meubolso/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec builds a decimal from a string literal, failing the test on a typo.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// CreateTestUser creates a user with a hashed password, unique email, and a
// salary of 5000.00.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:          fmt.Sprintf("Test User %d", counter.Load()),
		Email:         email,
		PasswordHash:  string(hash),
		MonthlySalary: decimal.NewFromInt(5000),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestFixedBill creates an active fixed bill with the given amount.
func CreateTestFixedBill(t *testing.T, db *gorm.DB, userID uint, amount string) *models.FixedBill {
	t.Helper()

	bill := &models.FixedBill{
		UserID: userID,
		Name:   fmt.Sprintf("Test Bill %d", nextID()),
		Amount: Dec(t, amount),
		DueDay: 10,
		Active: true,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test fixed bill: %v", err)
	}
	return bill
}

// CreateTestInstallment creates an active installment that started on the
// given date with the given per-parcel amount.
func CreateTestInstallment(t *testing.T, db *gorm.DB, userID uint, parcelAmount string, start models.Date) *models.Installment {
	t.Helper()

	parcel := Dec(t, parcelAmount)
	installment := &models.Installment{
		UserID:            userID,
		Description:       fmt.Sprintf("Test Installment %d", nextID()),
		TotalAmount:       parcel.Mul(decimal.NewFromInt(10)),
		InstallmentAmount: parcel,
		TotalCount:        10,
		RemainingCount:    10,
		StartDate:         start,
		Active:            true,
	}
	if err := db.Create(installment).Error; err != nil {
		t.Fatalf("failed to create test installment: %v", err)
	}
	return installment
}

// CreateTestDailyEntry creates a daily entry on the given date.
func CreateTestDailyEntry(t *testing.T, db *gorm.DB, userID uint, category, amount string, date models.Date) *models.DailyEntry {
	t.Helper()

	entry := &models.DailyEntry{
		UserID:      userID,
		Description: fmt.Sprintf("Test Entry %d", nextID()),
		Category:    category,
		Amount:      Dec(t, amount),
		EntryDate:   date,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test daily entry: %v", err)
	}
	return entry
}

// MarchDate returns a date in March 2024, a fixed period used by the
// aggregation tests.
func MarchDate(day int) models.Date {
	return models.NewDate(2024, time.March, day)
}
