// internal/domain/attendance/entity.go
package attendance

import "time"

// Record is a head count for one service.
type Record struct {
	ID          string    `json:"id"`
	ServiceDate string    `json:"service_date"`
	ServiceType string    `json:"service_type"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	Visitors    int       `json:"visitors"`
	Notes       string    `json:"notes,omitempty"`
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Total is the combined head count.
func (r *Record) Total() int {
	return r.Adults + r.Children + r.Visitors
}
