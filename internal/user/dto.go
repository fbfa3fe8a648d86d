package user

// CreateUserDTO is the request payload for creating an employee account.
type CreateUserDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Status    *bool  `json:"status,omitempty"`
}

// UpdateUserDTO is a partial update. Pointer fields distinguish "not provided"
// from "provided as empty or false", so status:false is applied rather than
// silently skipped.
type UpdateUserDTO struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	Status    *bool   `json:"status,omitempty"`
}

// QueryParams are the supported list filters. Page is 1-indexed.
type QueryParams struct {
	Name   string
	Status string
	Page   int64
	Limit  int64
}

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

// Normalize clamps pagination to sane bounds.
func (p *QueryParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// StatusFilter parses the status parameter. The second return is false when no
// status filter was requested. Anything other than "true" filters for inactive
// users.
func (p *QueryParams) StatusFilter() (bool, bool) {
	if p.Status == "" {
		return false, false
	}
	return p.Status == "true", true
}

// PaginatedUsers is the list response envelope. TotalPages is the ceiling of
// count/limit.
type PaginatedUsers struct {
	Count       int64   `json:"count"`
	CurrentPage int64   `json:"current_page"`
	Results     []*User `json:"results"`
	TotalPages  int64   `json:"total_pages"`
}
