// internal/domain/attendance/dto.go
package attendance

// RecordRequest for submitting a service head count
type RecordRequest struct {
	ServiceDate string `json:"service_date" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	Adults      int    `json:"adults" binding:"min=0"`
	Children    int    `json:"children" binding:"min=0"`
	Visitors    int    `json:"visitors" binding:"min=0"`
	Notes       string `json:"notes"`
}
