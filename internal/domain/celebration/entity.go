// internal/domain/celebration/entity.go
package celebration

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Kind string

const (
	KindBirthday     Kind = "birthday"
	KindAnniversary  Kind = "anniversary"
	KindThanksgiving Kind = "thanksgiving"
)

// Celebration is a member-submitted celebration request from the public
// site, moderated by an admin before announcement.
type Celebration struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Kind        Kind      `json:"kind"`
	Date        string    `json:"date"`
	Message     string    `json:"message,omitempty"`
	Status      Status    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	ReviewedBy  string    `json:"reviewed_by,omitempty"`
	ReviewedAt  time.Time `json:"reviewed_at,omitempty"`
}
