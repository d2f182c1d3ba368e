// internal/domain/celebration/dto.go
package celebration

// SubmitRequest from the public celebration form
type SubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Kind    Kind   `json:"kind" binding:"required,oneof=birthday anniversary thanksgiving"`
	Date    string `json:"date" binding:"required"`
	Message string `json:"message"`
}

// ReviewRequest for approving or rejecting a submission
type ReviewRequest struct {
	Status Status `json:"status" binding:"required,oneof=approved rejected"`
}
