package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// Email and UserName carry unique indexes so concurrent creations of
// the same account fail at the store instead of racing past the
// service-level pre-check.
type UserSchema struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	FirstName    string `gorm:"not null"`
	LastName     string
	Email        string `gorm:"not null;uniqueIndex"`
	Password     string `gorm:"not null"`
	UserName     string `gorm:"not null;uniqueIndex"`
	ProfilePhoto string
	Bio          string
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// isDuplicateKey reports whether err is a unique index violation.
// GORM translates driver errors to ErrDuplicatedKey when the dialect
// supports it; the message check covers the sqlite dialect used in tests.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// Create inserts a new user into the database. A unique index violation
// on email or username is surfaced as an already-exists conflict.
func (r *UserRepoPG) Create(ctx context.Context, u *domain.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := toSchema(u)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKey(err) {
			r.log.Warn("duplicate user rejected by unique index", zap.String("email", u.Email), zap.String("username", u.UserName))
			return 0, pkgerrors.NewAlreadyExistsError("user", "user with this email already exists")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a user from the database by their unique ID.
// Returns (nil, nil) when no record matches.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toDomain(&model), nil
}

// GetByEmail retrieves a user from the database by their email address.
// Returns (nil, nil) when no record matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toDomain(&model), nil
}

// GetByUsername retrieves a user from the database by their username.
// Returns (nil, nil) when no record matches.
func (r *UserRepoPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("user_name = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by username", zap.String("username", username))
			return nil, nil
		}
		r.log.Error("failed to get user by username from db", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return toDomain(&model), nil
}

// List retrieves all users from the database ordered by ID.
func (r *UserRepoPG) List(ctx context.Context) ([]domain.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]domain.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}

	return users, nil
}

// Delete removes a user from the database by ID and reports the number
// of rows actually removed.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, errors.New("invalid user id")
	}

	tx := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if tx.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(tx.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", tx.Error)
	}

	r.log.Info("user delete executed", zap.Int64("id", id), zap.Int64("rows", tx.RowsAffected))
	return tx.RowsAffected, nil
}

// toSchema converts a domain user into the persistence model.
func toSchema(u *domain.User) UserSchema {
	return UserSchema{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Password:     u.Password,
		UserName:     u.UserName,
		ProfilePhoto: u.ProfilePhoto,
		Bio:          u.Bio,
	}
}

// toDomain converts a persistence model into the domain entity.
func toDomain(m *UserSchema) *domain.User {
	return &domain.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Password:     m.Password,
		UserName:     m.UserName,
		ProfilePhoto: m.ProfilePhoto,
		Bio:          m.Bio,
	}
}
