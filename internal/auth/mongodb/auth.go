// Package mongodb adapts the user repository to the narrow storage interface
// the auth flow needs.
package mongodb

import (
	"context"

	"github.com/frahmantamala/employee-admin/internal/auth"
	usermongo "github.com/frahmantamala/employee-admin/internal/user/mongodb"
)

type AuthRepository struct {
	users *usermongo.UserRepository
}

func NewAuthRepository(users *usermongo.UserRepository) *AuthRepository {
	return &AuthRepository{users: users}
}

func (r *AuthRepository) GetCredentials(ctx context.Context, identifier string) (*auth.Credentials, error) {
	u, err := r.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	return &auth.Credentials{
		UserID:       u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Active:       u.Status,
	}, nil
}

func (r *AuthRepository) GetUserWithPermissions(ctx context.Context, userID string) (*auth.User, error) {
	u, err := r.users.GetUserWithPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	codes := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		if p.Code != "" {
			codes = append(codes, p.Code)
		}
	}

	return &auth.User{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Status:      u.Status,
		Permissions: codes,
	}, nil
}
