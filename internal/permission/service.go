package permission

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/employee-admin/internal"
)

// Repository is the document-store boundary for permissions.
type Repository interface {
	FindAll(ctx context.Context) ([]*Permission, error)
	FindByID(ctx context.Context, id string) (*Permission, error)
	FindOneByCode(ctx context.Context, code string) (*Permission, error)
	Insert(ctx context.Context, p *Permission) (*Permission, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create validates the payload, rejects duplicate codes and persists the
// permission. Like user creation, the duplicate check relies on the unique
// index on code as its backstop.
func (s *Service) Create(ctx context.Context, dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("permission validation failed", "error", err.GetDetailedMessage())
		return nil, err
	}

	existing, err := s.repo.FindOneByCode(ctx, dto.Code)
	if err != nil {
		s.logger.Error("duplicate check failed", "error", err, "code", dto.Code)
		return nil, errors.NewInternalError("failed to check existing permissions", err)
	}
	if existing != nil {
		s.logger.Warn("duplicate permission rejected", "code", dto.Code)
		return nil, errors.ErrPermissionExists
	}

	p := &Permission{
		Code:        dto.Code,
		Description: dto.Description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		s.logger.Error("failed to insert permission", "error", err, "code", dto.Code)
		return nil, errors.NewInternalError("failed to create permission", err)
	}

	s.logger.Info("permission created", "permission_id", created.ID, "code", created.Code)
	return created, nil
}

// List returns every permission in storage-default order.
func (s *Service) List(ctx context.Context) ([]*Permission, error) {
	permissions, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, errors.NewInternalError("failed to list permissions", err)
	}
	return permissions, nil
}

// GetByID returns (nil, nil) for empty or unknown ids.
func (s *Service) GetByID(ctx context.Context, id string) (*Permission, error) {
	if id == "" {
		return nil, nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get permission", "error", err, "permission_id", id)
		return nil, errors.NewInternalError("failed to get permission", err)
	}
	return p, nil
}

// Delete removes the permission. Empty or unknown ids return false.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete permission", "error", err, "permission_id", id)
		return false, errors.NewInternalError("failed to delete permission", err)
	}

	if deleted {
		s.logger.Info("permission deleted", "permission_id", id)
	}
	return deleted, nil
}
