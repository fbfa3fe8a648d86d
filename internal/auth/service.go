package auth

import (
	"context"

	"github.com/frahmantamala/employee-admin/pkg/hasher"
)

// Credentials is what the login flow needs from storage: the stored hash plus
// enough of the account to mint tokens.
type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
	Active       bool
}

// UserRepository is the storage boundary the auth flow depends on.
type UserRepository interface {
	// GetCredentials matches the identifier against email or username.
	// Unknown identifiers yield (nil, nil).
	GetCredentials(ctx context.Context, identifier string) (*Credentials, error)
	// GetUserWithPermissions loads the middleware view of a user, permission
	// codes expanded. Unknown ids yield (nil, nil).
	GetUserWithPermissions(ctx context.Context, userID string) (*User, error)
}

type TokenGenerator interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID, email string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithPermissions(ctx context.Context, userID string) (*User, error)
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	passwordHasher hasher.PasswordHasher
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, passwordHasher hasher.PasswordHasher) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		passwordHasher: passwordHasher,
	}
}

// Authenticate validates credentials and returns a fresh token pair. Unknown
// identifiers and bad passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	creds, err := s.userRepo.GetCredentials(ctx, dto.Identifier)
	if err != nil {
		return AuthTokens{}, err
	}
	if creds == nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if !s.passwordHasher.Check(dto.Password, creds.PasswordHash) {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if !creds.Active {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(creds.UserID, creds.Email)
}

// RefreshTokens validates the refresh token and rotates the pair.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	u, err := s.userRepo.GetUserWithPermissions(ctx, claims.UserID)
	if err != nil {
		return AuthTokens{}, err
	}
	if u == nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !u.Status {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(claims.UserID, claims.Email)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// GetUserWithPermissions loads the middleware view of the user.
func (s *Service) GetUserWithPermissions(ctx context.Context, userID string) (*User, error) {
	return s.userRepo.GetUserWithPermissions(ctx, userID)
}

func (s *Service) issueTokens(userID, email string) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
