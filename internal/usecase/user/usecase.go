package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"user-account-service/internal/adapter/cache"
	domain "user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
	"user-account-service/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// Lookups return (nil, nil) when no record matches; the usecase decides
// whether an empty result is a not-found failure.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)                 // Create a new user, returns assigned ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)               // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error)        // Retrieve user by email
	GetByUsername(ctx context.Context, username string) (*domain.User, error)  // Retrieve user by username
	List(ctx context.Context) ([]domain.User, error)                           // List all users
	Delete(ctx context.Context, id int64) (int64, error)                       // Delete user by ID, returns rows affected
}

// Service implements the Usecase interface for user account operations.
// It orchestrates validation, email uniqueness enforcement, password
// hashing, and delegation to the repository.
type Service struct {
	repo     Repository              // Repository for data access
	cache    cache.UserCache         // Optional cache for by-ID lookups, may be nil
	hasher   security.PasswordHasher // Hasher for password storage
	log      *zap.Logger             // Logger for structured logging
	validate *validator.Validate     // Validator for request validation
}

var _ Usecase = (*Service)(nil)

// New creates a new instance of Service.
// If c is nil, caching is disabled.
func New(r Repository, c cache.UserCache, h security.PasswordHasher, log *zap.Logger) *Service {
	return &Service{repo: r, cache: c, hasher: h, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error message.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// CreateUser creates a new user account. The email uniqueness pre-check
// runs before any field validation; the unique index on email backs it
// up under concurrent creation, so a duplicate-key violation from the
// repository also surfaces as a conflict.
func (uc *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user", zap.String("email", in.Email), zap.String("username", in.UserName))

	existingUser, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create user", err)
	}
	if existingUser != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, pkgerrors.NewAlreadyExistsError("user", "user with this email already exists")
	}

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	if in.Password == "" {
		uc.log.Warn("create user validation failed", zap.String("reason", "password required"))
		return nil, pkgerrors.NewValidationError("password", "password is required")
	}

	if in.UserName == "" {
		uc.log.Warn("create user validation failed", zap.String("reason", "username required"))
		return nil, pkgerrors.NewValidationError("username", "username is required")
	}

	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create user", err)
	}

	u := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Password:     hashed,
		UserName:     in.UserName,
		ProfilePhoto: in.ProfilePhoto,
		Bio:          in.Bio,
	}

	id, err := uc.repo.Create(ctx, u)
	if err != nil {
		if pkgerrors.Expected(err) {
			uc.log.Warn("create user conflict", zap.String("email", in.Email), zap.Error(err))
			return nil, err
		}
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create user", err)
	}
	u.ID = id

	uc.log.Info("user created", zap.Int64("id", id))
	return &CreateUserResponse{User: toUserDTO(u)}, nil
}

// findUser translates a repository lookup result into a usecase outcome:
// an empty result becomes a not-found failure, an unexpected store error
// becomes a generic internal failure.
func (uc *Service) findUser(found *domain.User, err error, notFoundMsg string) (*domain.User, error) {
	if err != nil {
		uc.log.Error("failed to search user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to find user", err)
	}
	if found == nil {
		return nil, pkgerrors.NewNotFoundError("user", notFoundMsg)
	}
	return found, nil
}

// GetUser retrieves a user by ID.
// It uses cache-aside pattern: check cache first, then database on a miss.
func (uc *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	if in.ID <= 0 {
		uc.log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.NewValidationError("id", "invalid user id")
	}

	if uc.cache != nil {
		cachedUser, err := uc.cache.Get(ctx, in.ID)
		if err != nil {
			uc.log.Warn("cache get error, falling back to database", zap.Int64("id", in.ID), zap.Error(err))
		} else if cachedUser != nil {
			uc.log.Debug("user retrieved from cache", zap.Int64("id", in.ID))
			return &GetUserResponse{User: toUserDTO(cachedUser)}, nil
		}
	}

	found, err := uc.repo.GetByID(ctx, in.ID)
	u, err := uc.findUser(found, err, "user not found by id")
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, u); err != nil {
			uc.log.Warn("failed to cache user", zap.Int64("id", in.ID), zap.Error(err))
		}
	}

	return &GetUserResponse{User: toUserDTO(u)}, nil
}

// GetUserByUsername retrieves a user by their username.
func (uc *Service) GetUserByUsername(ctx context.Context, in GetUserByUsernameRequest) (*GetUserResponse, error) {
	found, err := uc.repo.GetByUsername(ctx, in.UserName)
	u, err := uc.findUser(found, err, "user not found by username")
	if err != nil {
		return nil, err
	}

	return &GetUserResponse{User: toUserDTO(u)}, nil
}

// ListUsers retrieves every user record. An empty store yields an empty
// list, not a failure.
func (uc *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to list users", err)
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = toUserDTO(&domainUsers[i])
	}

	return &ListUsersResponse{Users: users}, nil
}

// DeleteUser deletes a user by ID. Zero rows affected is reported as
// not found. It invalidates the cache entry after successful deletion.
func (uc *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.NewValidationError("id", "invalid user id")
	}

	deleted, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to delete user", err)
	}
	if deleted == 0 {
		uc.log.Warn("user not found for deletion", zap.Int64("id", in.ID))
		return nil, pkgerrors.NewNotFoundError("user", "user not found")
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, in.ID); err != nil {
			uc.log.Warn("failed to invalidate cache after delete", zap.Int64("id", in.ID), zap.Error(err))
		}
	}

	uc.log.Info("user deleted", zap.Int64("id", in.ID), zap.Int64("deleted", deleted))
	return &DeleteUserResponse{Deleted: deleted}, nil
}

// toUserDTO converts a domain user into the response DTO.
func toUserDTO(u *domain.User) User {
	return User{
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
