package model

import "gorm.io/gorm"

// RecordType discriminates the seven kinds of medical record entries.
type RecordType string

const (
	RecordExam        RecordType = "exam"
	RecordMedication  RecordType = "medication"
	RecordAppointment RecordType = "appointment"
	RecordHistory     RecordType = "history"
	RecordIncident    RecordType = "incident"
	RecordPending     RecordType = "pending"
	RecordCredential  RecordType = "credential"
)

// RecordTypes lists every valid record type.
var RecordTypes = []RecordType{
	RecordExam,
	RecordMedication,
	RecordAppointment,
	RecordHistory,
	RecordIncident,
	RecordPending,
	RecordCredential,
}

// SensitiveRecordTypes are the record kinds hidden by the client while a
// patient's sensitive-data password gate is active.
var SensitiveRecordTypes = []RecordType{RecordExam, RecordHistory, RecordCredential}

// IsValidRecordType reports whether rt is one of the seven record types.
func IsValidRecordType(rt RecordType) bool {
	for _, v := range RecordTypes {
		if v == rt {
			return true
		}
	}
	return false
}

// IsSensitiveRecordType reports whether records of type rt fall under the
// sensitive-data gate.
func IsSensitiveRecordType(rt RecordType) bool {
	for _, v := range SensitiveRecordTypes {
		if v == rt {
			return true
		}
	}
	return false
}

// ExamDetails holds fields specific to "exam" records.
type ExamDetails struct {
	ExamType         string `json:"exam_type" example:"Blood test"`
	RequestingDoctor string `json:"requesting_doctor" example:"Dr. Lima"`
	Observations     string `json:"observations" example:"Fasting required"`
}

// MedicationDetails holds fields specific to "medication" records.
type MedicationDetails struct {
	MedicationName    string `json:"medication_name" example:"Amoxicillin"`
	Frequency         string `json:"frequency" example:"8/8h"`
	UsageType         string `json:"usage_type" example:"continuous"`
	PeriodOfDay       string `json:"period_of_day" example:"morning"`
	StartDate         string `json:"start_date" example:"2025-01-01"`
	Duration          string `json:"duration" example:"7 days"`
	PrescribingDoctor string `json:"prescribing_doctor" example:"Dr. Lima"`
	Indication        string `json:"indication" example:"Throat infection"`
}

// AppointmentDetails holds fields specific to "appointment" records.
type AppointmentDetails struct {
	ClinicHospital string `json:"clinic_hospital" example:"Santa Casa"`
	Doctor         string `json:"doctor" example:"Dr. Lima"`
	Specialty      string `json:"specialty" example:"Cardiology"`
	Address        string `json:"address" example:"123 Main St"`
	MapURL         string `json:"map_url"`
	Time           string `json:"time" example:"14:30"`
}

// PendingDetails holds fields specific to "pending" records.
type PendingDetails struct {
	Deadline string `json:"deadline" example:"2025-02-01"`
}

// CredentialDetails holds fields specific to "credential" records.
// The password here is a stored note for the family's own portals, kept as
// plain text by design of the original product.
type CredentialDetails struct {
	ServiceName     string `json:"service_name" example:"Lab portal"`
	ServiceURL      string `json:"service_url" example:"https://lab.example.com"`
	Username        string `json:"username" example:"ana.souza"`
	Password        string `json:"password"`
	AdditionalNotes string `json:"additional_notes"`
}

// MedicalRecord represents a dated entry of one of seven kinds attached to a
// patient. Type-specific fields live in exactly one of the detail variants;
// the variant must match Type.
// @Description Medical record information
type MedicalRecord struct {
	gorm.Model
	PatientID   uint       `json:"patient_id" gorm:"column:patient_id;not null;index" example:"1"`
	Type        RecordType `json:"type" gorm:"column:type;size:16;not null;index" example:"exam"`
	Title       string     `json:"title" gorm:"column:title" example:"Complete blood count"`
	Description string     `json:"description" gorm:"column:description;type:text"`
	Date        string     `json:"date" gorm:"column:date;not null" example:"2025-01-01"`
	Attachments []string   `json:"attachments" gorm:"column:attachments;serializer:json"`

	Exam        *ExamDetails        `json:"exam,omitempty" gorm:"column:exam;serializer:json"`
	Medication  *MedicationDetails  `json:"medication,omitempty" gorm:"column:medication;serializer:json"`
	Appointment *AppointmentDetails `json:"appointment,omitempty" gorm:"column:appointment;serializer:json"`
	Pending     *PendingDetails     `json:"pending,omitempty" gorm:"column:pending;serializer:json"`
	Credential  *CredentialDetails  `json:"credential,omitempty" gorm:"column:credential;serializer:json"`
}

// DetailMismatch returns the json name of the first detail variant set on r
// that does not belong to r.Type, or "" when the variants are consistent.
func (r *MedicalRecord) DetailMismatch() string {
	variants := []struct {
		name string
		set  bool
		typ  RecordType
	}{
		{"exam", r.Exam != nil, RecordExam},
		{"medication", r.Medication != nil, RecordMedication},
		{"appointment", r.Appointment != nil, RecordAppointment},
		{"pending", r.Pending != nil, RecordPending},
		{"credential", r.Credential != nil, RecordCredential},
	}
	for _, v := range variants {
		if v.set && v.typ != r.Type {
			return v.name
		}
	}
	return ""
}

// UpdateMedicalRecordRequest carries a partial medical record update.
type UpdateMedicalRecordRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Date        *string             `json:"date"`
	Attachments *[]string           `json:"attachments"`
	Exam        *ExamDetails        `json:"exam"`
	Medication  *MedicationDetails  `json:"medication"`
	Appointment *AppointmentDetails `json:"appointment"`
	Pending     *PendingDetails     `json:"pending"`
	Credential  *CredentialDetails  `json:"credential"`
}
