package model

import "gorm.io/gorm"

// BloodTypes lists the accepted blood type values for a patient.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodType reports whether bt is one of the accepted blood types.
// An empty value is allowed since blood type is optional.
func IsValidBloodType(bt string) bool {
	if bt == "" {
		return true
	}
	for _, v := range BloodTypes {
		if v == bt {
			return true
		}
	}
	return false
}

// Patient represents a family member whose medical data is tracked
// @Description Patient information
type Patient struct {
	gorm.Model
	FullName              string   `json:"full_name" gorm:"column:full_name;not null" example:"Ana Souza"`
	BirthDate             string   `json:"birth_date" gorm:"column:birth_date;not null" example:"2008-07-10"`
	BloodType             string   `json:"blood_type" gorm:"column:blood_type;size:3" example:"O+"`
	AttendingDoctor       string   `json:"attending_doctor" gorm:"column:attending_doctor" example:"Dr. Lima"`
	Allergies             []string `json:"allergies" gorm:"column:allergies;serializer:json" example:"Penicillin,Dust"`
	AvatarURL             string   `json:"avatar_url" gorm:"column:avatar_url"`
	EmergencyContactName  string   `json:"emergency_contact_name" gorm:"column:emergency_contact_name" example:"Carlos Souza"`
	EmergencyContactPhone string   `json:"emergency_contact_phone" gorm:"column:emergency_contact_phone" example:"081234567890"`
	InsurancePlan         string   `json:"insurance_plan" gorm:"column:insurance_plan" example:"Unimed Basic"`
	InsuranceNumber       string   `json:"insurance_number" gorm:"column:insurance_number" example:"987654321"`
	InsuranceCardFrontURL string   `json:"insurance_card_front_url" gorm:"column:insurance_card_front_url"`
	InsuranceCardBackURL  string   `json:"insurance_card_back_url" gorm:"column:insurance_card_back_url"`
	IDCardFrontURL        string   `json:"id_card_front_url" gorm:"column:id_card_front_url"`
	IDCardBackURL         string   `json:"id_card_back_url" gorm:"column:id_card_back_url"`
	// SensitivePassword is only meaningful while SensitivePasswordActive is
	// true. It is a display-gate convenience for the client, not a credential.
	SensitivePasswordActive bool   `json:"sensitive_password_active" gorm:"column:sensitive_password_active;default:false"`
	SensitivePassword       string `json:"sensitive_password" gorm:"column:sensitive_password"`
}

// UpdatePatientRequest carries a partial patient update. Pointer fields
// distinguish "absent" from zero values so a PUT only touches what it names.
type UpdatePatientRequest struct {
	FullName                *string   `json:"full_name"`
	BirthDate               *string   `json:"birth_date"`
	BloodType               *string   `json:"blood_type"`
	AttendingDoctor         *string   `json:"attending_doctor"`
	Allergies               *[]string `json:"allergies"`
	AvatarURL               *string   `json:"avatar_url"`
	EmergencyContactName    *string   `json:"emergency_contact_name"`
	EmergencyContactPhone   *string   `json:"emergency_contact_phone"`
	InsurancePlan           *string   `json:"insurance_plan"`
	InsuranceNumber         *string   `json:"insurance_number"`
	InsuranceCardFrontURL   *string   `json:"insurance_card_front_url"`
	InsuranceCardBackURL    *string   `json:"insurance_card_back_url"`
	IDCardFrontURL          *string   `json:"id_card_front_url"`
	IDCardBackURL           *string   `json:"id_card_back_url"`
	SensitivePasswordActive *bool     `json:"sensitive_password_active"`
	SensitivePassword       *string   `json:"sensitive_password"`
}
