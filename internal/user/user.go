package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/user"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the domain view of an employee account. PasswordHash never
// serializes; Permissions carries ids only until a lookup expands them.
type User struct {
	ID           string       `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Status       bool         `json:"status"`
	Permissions  []Permission `json:"permissions"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Permission is the expanded view of a permission referenced by a user. Only
// ID is set when the relation has not been expanded.
type Permission struct {
	ID          string `json:"id"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

func (u *User) PermissionIDs() []string {
	ids := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		ids[i] = p.ID
	}
	return ids
}

func (u *User) HasPermissionCode(code string) bool {
	for _, p := range u.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

func ToDataModel(u *User) (*userDatamodel.User, error) {
	dm := &userDatamodel.User{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.PasswordHash,
		Status:      u.Status,
		Permissions: make([]primitive.ObjectID, 0, len(u.Permissions)),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}

	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, err
		}
		dm.ID = oid
	}

	for _, p := range u.Permissions {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, err
		}
		dm.Permissions = append(dm.Permissions, oid)
	}

	return dm, nil
}

func FromDataModel(dm *userDatamodel.User) *User {
	u := &User{
		ID:           dm.ID.Hex(),
		FirstName:    dm.FirstName,
		LastName:     dm.LastName,
		Username:     dm.Username,
		Email:        dm.Email,
		PasswordHash: dm.Password,
		Status:       dm.Status,
		Permissions:  make([]Permission, 0, len(dm.Permissions)),
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}

	for _, oid := range dm.Permissions {
		u.Permissions = append(u.Permissions, Permission{ID: oid.Hex()})
	}

	return u
}
