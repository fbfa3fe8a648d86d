package user

import (
	errors "github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/core/common/validation"
)

// ValidateCreateUser checks the creation payload shape. It always returns a
// structured result: nil on success, otherwise a validation AppError carrying
// one entry per invalid field.
func ValidateCreateUser(dto CreateUserDTO) *errors.AppError {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLength(100)
	v.Field("last_name", dto.LastName).Required().MaxLength(100)
	v.Field("username", dto.Username).Required().MinLength(3).MaxLength(50)
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().MinLength(8)
	return v.Validate()
}

// ValidateUpdateUser checks only the fields present in a partial update.
func ValidateUpdateUser(dto UpdateUserDTO) *errors.AppError {
	v := validation.NewValidator()
	if dto.FirstName != nil {
		v.Field("first_name", *dto.FirstName).Required().MaxLength(100)
	}
	if dto.LastName != nil {
		v.Field("last_name", *dto.LastName).Required().MaxLength(100)
	}
	if dto.Username != nil {
		v.Field("username", *dto.Username).Required().MinLength(3).MaxLength(50)
	}
	if dto.Email != nil {
		v.Field("email", *dto.Email).Required().Email()
	}
	if dto.Password != nil {
		v.Field("password", *dto.Password).Required().MinLength(8)
	}
	return v.Validate()
}
