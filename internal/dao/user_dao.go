package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/models"
)

// UserDAO handles database operations for users and pharmacies
type UserDAO struct {
	db *database.DB
}

// NewUserDAO creates a new UserDAO instance
func NewUserDAO(db *database.DB) *UserDAO {
	return &UserDAO{db: db}
}

// GetByID retrieves a user by ID
func (dao *UserDAO) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT USER_ID, USERNAME, EMAIL, ROLE, IS_ACTIVE, CREATED_TIME
		FROM USERS
		WHERE USER_ID = ?
	`

	var user models.User
	err := dao.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetPharmacyByUser retrieves the pharmacy a pharmacist user belongs to
func (dao *UserDAO) GetPharmacyByUser(ctx context.Context, userID string) (*models.Pharmacy, error) {
	query := `
		SELECT p.PHARMACY_ID, p.NAME, p.ADDRESS, p.CITY, p.CREATED_TIME
		FROM PHARMACIES p
		JOIN PHARMACY_STAFF s ON s.PHARMACY_ID = p.PHARMACY_ID
		WHERE s.USER_ID = ?
	`

	var pharmacy models.Pharmacy
	err := dao.db.GetContext(ctx, &pharmacy, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pharmacy for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pharmacy for user: %w", err)
	}

	return &pharmacy, nil
}
