package model

import "gorm.io/gorm"

// Appointment is the standalone appointment entity used by the dashboard's
// upcoming-appointments panel. It is distinct from medical records of type
// "appointment", which are timeline entries; the standalone collection is
// authoritative for the upcoming listing.
// @Description Appointment information
type Appointment struct {
	gorm.Model
	PatientID   uint   `json:"patient_id" gorm:"column:patient_id;index" example:"1"`
	PatientName string `json:"patient_name" gorm:"column:patient_name" example:"Ana Souza"`
	Specialty   string `json:"specialty" gorm:"column:specialty" example:"Cardiology"`
	Doctor      string `json:"doctor" gorm:"column:doctor" example:"Dr. Lima"`
	Date        string `json:"date" gorm:"column:date;not null" example:"2025-03-15"`
	Time        string `json:"time" gorm:"column:time" example:"14:30"`
	Location    string `json:"location" gorm:"column:location" example:"Santa Casa, room 12"`
}

// UpdateAppointmentRequest carries a partial appointment update.
type UpdateAppointmentRequest struct {
	Specialty *string `json:"specialty"`
	Doctor    *string `json:"doctor"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Location  *string `json:"location"`
}
