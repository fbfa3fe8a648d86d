package user

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/pkg/hasher"
)

// ListFilter is the semantic filter the service hands to the store. Name is a
// case-insensitive substring matched against first name, last name, username
// and email; Status, when set, is an exact match.
type ListFilter struct {
	Name   string
	Status *bool
}

// Repository is the document-store boundary for users.
type Repository interface {
	Find(ctx context.Context, filter ListFilter, skip, limit int64) ([]*User, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	// FindByID returns the user with the password stripped and the
	// permissions relation expanded. Missing or malformed ids yield (nil, nil).
	FindByID(ctx context.Context, id string) (*User, error)
	// Get returns the full document without expansion, for read-modify-write.
	Get(ctx context.Context, id string) (*User, error)
	FindOneByEmail(ctx context.Context, email string) (*User, error)
	FindOneByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, u *User) (*User, error)
	Save(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   Repository
	hasher hasher.PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, passwordHasher hasher.PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: passwordHasher,
		logger: logger,
	}
}

// Create validates the payload, rejects duplicate email or username, hashes
// the password and persists the new user. The duplicate check and the insert
// are not atomic; the unique indexes on email and username are the backstop
// for concurrent creates.
func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := ValidateCreateUser(dto); err != nil {
		s.logger.Warn("user validation failed", "error", err.GetDetailedMessage())
		return nil, err
	}

	exists, err := s.checkIfUserExists(ctx, dto.Email, dto.Username)
	if err != nil {
		s.logger.Error("duplicate check failed", "error", err)
		return nil, errors.NewInternalError("failed to check existing users", err)
	}
	if exists {
		s.logger.Warn("duplicate user rejected", "email", dto.Email, "username", dto.Username)
		return nil, errors.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	status := true
	if dto.Status != nil {
		status = *dto.Status
	}

	now := time.Now().UTC()
	u := &User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Status:       status,
		Permissions:  []Permission{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		s.logger.Error("failed to insert user", "error", err, "email", dto.Email)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Find returns a filtered, paginated page of users. Count runs as a separate
// query, so it is an approximation under concurrent writes.
func (s *Service) Find(ctx context.Context, params QueryParams) (*PaginatedUsers, error) {
	params.Normalize()

	filter := ListFilter{Name: params.Name}
	if status, ok := params.StatusFilter(); ok {
		filter.Status = &status
	}

	skip := (params.Page - 1) * params.Limit
	results, err := s.repo.Find(ctx, filter, skip, params.Limit)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return nil, errors.NewInternalError("failed to count users", err)
	}

	totalPages := count / params.Limit
	if count%params.Limit != 0 {
		totalPages++
	}

	return &PaginatedUsers{
		Count:       count,
		CurrentPage: params.Page,
		Results:     results,
		TotalPages:  totalPages,
	}, nil
}

// GetByID returns the user with permissions expanded and the password
// stripped. An empty id short-circuits to (nil, nil) without touching the
// store; an unknown id also yields (nil, nil).
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, nil
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to get user", err)
	}

	return u, nil
}

// Update applies the fields present in the payload to the stored user. Absent
// fields (nil pointers) are left untouched; provided values overwrite,
// including status:false. A provided password is re-hashed. Returns (nil, nil)
// when the user does not exist.
func (s *Service) Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error) {
	if id == "" {
		return nil, nil
	}

	if err := ValidateUpdateUser(dto); err != nil {
		s.logger.Warn("user update validation failed", "error", err.GetDetailedMessage(), "user_id", id)
		return nil, err
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user for update", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to update user", err)
	}
	if u == nil {
		return nil, nil
	}

	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Username != nil {
		u.Username = *dto.Username
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Status != nil {
		u.Status = *dto.Status
	}
	if dto.Password != nil {
		hash, err := s.hasher.Hash(*dto.Password)
		if err != nil {
			s.logger.Error("password hashing failed", "error", err, "user_id", id)
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Save(ctx, u)
	if err != nil {
		s.logger.Error("failed to save user", "error", err, "user_id", id)
		return nil, errors.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return updated, nil
}

// Delete removes the user. Empty or unknown ids return false without error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return false, errors.NewInternalError("failed to delete user", err)
	}

	if deleted {
		s.logger.Info("user deleted", "user_id", id)
	}
	return deleted, nil
}

func (s *Service) checkIfUserExists(ctx context.Context, email, username string) (bool, error) {
	byEmail, err := s.repo.FindOneByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if byEmail != nil {
		return true, nil
	}

	byUsername, err := s.repo.FindOneByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return byUsername != nil, nil
}
