package model

import "gorm.io/gorm"

// Priority levels for pending items.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// IsValidPriority reports whether p is a known priority. Empty is allowed;
// it defaults to medium on creation.
func IsValidPriority(p string) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PendingItem is an outstanding task or reminder for a patient, independent
// of medical records of type "pending".
// @Description Pending item information
type PendingItem struct {
	gorm.Model
	PatientID   uint   `json:"patient_id" gorm:"column:patient_id;index" example:"1"`
	Title       string `json:"title" gorm:"column:title;not null" example:"Schedule dentist"`
	Description string `json:"description" gorm:"column:description;type:text"`
	Priority    string `json:"priority" gorm:"column:priority;size:8;default:medium" example:"medium"`
	Completed   bool   `json:"completed" gorm:"column:completed;default:false"`
}

// UpdatePendingItemRequest carries a partial pending item update.
type UpdatePendingItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}
