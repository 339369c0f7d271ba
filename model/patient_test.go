package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBloodType(t *testing.T) {
	for _, bt := range BloodTypes {
		if !IsValidBloodType(bt) {
			t.Errorf("expected %q to be valid", bt)
		}
	}
	// Optional field, empty allowed
	assert.True(t, IsValidBloodType(""))

	assert.False(t, IsValidBloodType("C+"))
	assert.False(t, IsValidBloodType("o+"))
	assert.False(t, IsValidBloodType("AB"))
}

func TestPatientAllergiesRoundTrip(t *testing.T) {
	db := setupTestDB(t, "patient_allergies", &Patient{})

	p := Patient{
		FullName:  "Ana Souza",
		BirthDate: "2008-07-10",
		BloodType: "O+",
		Allergies: []string{"Penicillin", "Dust"},
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}

	var got Patient
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("failed to load patient: %v", err)
	}
	assert.Equal(t, []string{"Penicillin", "Dust"}, got.Allergies)
	assert.False(t, got.SensitivePasswordActive)
}
