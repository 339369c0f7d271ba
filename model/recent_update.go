package model

import "gorm.io/gorm"

// RecentUpdate is an append-only activity feed entry written as a side
// effect of patient and medical record creation. Entries are never updated
// or deleted; the API lists them newest first.
type RecentUpdate struct {
	gorm.Model
	PatientID   uint   `json:"patient_id" gorm:"column:patient_id;index"`
	PatientName string `json:"patient_name" gorm:"column:patient_name"`
	Description string `json:"description" gorm:"column:description"`
	Icon        string `json:"icon" gorm:"column:icon;size:32"`
}
