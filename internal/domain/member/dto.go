// internal/domain/member/dto.go
package member

// CreateRequest for registering a new member
type CreateRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	Department  string `json:"department"`
}

// UpdateRequest for editing a member; empty fields are left unchanged.
type UpdateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Department string `json:"department"`
	Status     Status `json:"status"`
}

// ListFilter narrows member listings.
type ListFilter struct {
	Department string `form:"department"`
	Status     Status `form:"status"`
	Search     string `form:"search"`
}
