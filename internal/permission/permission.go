package permission

import (
	"time"

	errors "github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/core/common/validation"
	permissionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/permission"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission is a grantable capability referenced by users. Deleting a
// permission does not touch users still referencing it; that cleanup belongs
// to the caller.
type Permission struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePermissionDTO is the request payload for creating a permission.
type CreatePermissionDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Validate checks the creation payload shape.
func (dto CreatePermissionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("code", dto.Code).Required().MinLength(2).MaxLength(50)
	v.Field("description", dto.Description).MaxLength(255)
	return v.Validate()
}

func ToDataModel(p *Permission) (*permissionDatamodel.Permission, error) {
	dm := &permissionDatamodel.Permission{
		Code:        p.Code,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, err
		}
		dm.ID = oid
	}
	return dm, nil
}

func FromDataModel(dm *permissionDatamodel.Permission) *Permission {
	return &Permission{
		ID:          dm.ID.Hex(),
		Code:        dm.Code,
		Description: dm.Description,
		CreatedAt:   dm.CreatedAt,
	}
}
