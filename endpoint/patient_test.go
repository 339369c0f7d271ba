package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/famedhub/famed-api/model"
	"github.com/stretchr/testify/assert"
)

func TestCreatePatientAndGetByID(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w := doJSON(t, r, "POST", "/api/patients", map[string]interface{}{
		"full_name":        "Ana Souza",
		"birth_date":       "2008-07-10",
		"blood_type":       "O+",
		"attending_doctor": "Dr. Lima",
		"allergies":        []string{"Penicillin", "Dust"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := dataField(t, decodeResponse(t, w))
	id := created["ID"].(float64)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/patients/%d", int(id)), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	got := dataField(t, decodeResponse(t, w))

	assert.Equal(t, "Ana Souza", got["full_name"])
	assert.Equal(t, "2008-07-10", got["birth_date"])
	assert.Equal(t, "O+", got["blood_type"])
	assert.Equal(t, "Dr. Lima", got["attending_doctor"])
	assert.NotEmpty(t, got["CreatedAt"])
	allergies, ok := got["allergies"].([]interface{})
	if !ok || len(allergies) != 2 {
		t.Fatalf("expected 2 allergies, got %v", got["allergies"])
	}
}

func TestCreatePatientValidation(t *testing.T) {
	r, db := setupEndpointTest(t)

	w := doJSON(t, r, "POST", "/api/patients", map[string]interface{}{
		"full_name":  "   ",
		"birth_date": "",
		"blood_type": "Z+",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	errs, ok := resp["errors"].([]interface{})
	if !ok {
		t.Fatalf("expected errors list in response, got %v", resp["errors"])
	}
	assert.Len(t, errs, 3)

	// Rejected payloads never reach the store.
	var count int64
	db.Model(&model.Patient{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePatientInactiveGateClearsPassword(t *testing.T) {
	r, db := setupEndpointTest(t)

	w := doJSON(t, r, "POST", "/api/patients", map[string]interface{}{
		"full_name":                 "Ana Souza",
		"birth_date":                "2008-07-10",
		"sensitive_password_active": false,
		"sensitive_password":        "1234",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var stored model.Patient
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load stored patient: %v", err)
	}
	assert.False(t, stored.SensitivePasswordActive)
	assert.Empty(t, stored.SensitivePassword)
}

func TestUpdatePatientPartialMerge(t *testing.T) {
	r, _ := setupEndpointTest(t)
	id := createTestPatient(t, r, "Ana Souza", "2008-07-10")

	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/patients/%d", id), map[string]interface{}{
		"attending_doctor": "Dr. Nogueira",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	got := dataField(t, decodeResponse(t, w))

	// Only the named field changed.
	assert.Equal(t, "Dr. Nogueira", got["attending_doctor"])
	assert.Equal(t, "Ana Souza", got["full_name"])
	assert.Equal(t, "2008-07-10", got["birth_date"])
}

func TestUpdatePatientDeactivatingGateClearsPassword(t *testing.T) {
	r, db := setupEndpointTest(t)
	id := createTestPatient(t, r, "Ana Souza", "2008-07-10")

	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/patients/%d", id), map[string]interface{}{
		"sensitive_password_active": true,
		"sensitive_password":        "1234",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/patients/%d", id), map[string]interface{}{
		"sensitive_password_active": false,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.Patient
	if err := db.First(&stored, id).Error; err != nil {
		t.Fatalf("load stored patient: %v", err)
	}
	assert.False(t, stored.SensitivePasswordActive)
	assert.Empty(t, stored.SensitivePassword)
}

func TestUpdatePatientNotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w := doJSON(t, r, "PUT", "/api/patients/999", map[string]interface{}{
		"full_name": "Nobody",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePatientCascades(t *testing.T) {
	r, db := setupEndpointTest(t)
	id := createTestPatient(t, r, "Ana Souza", "2008-07-10")

	w := doJSON(t, r, "POST", "/api/medical-records", map[string]interface{}{
		"patient_id": id,
		"type":       "exam",
		"date":       "2025-01-01",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/api/appointments", map[string]interface{}{
		"patient_id": id,
		"date":       "2025-03-15",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/api/pending-items", map[string]interface{}{
		"patient_id": id,
		"title":      "Schedule dentist",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/patients/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/patients/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var records, appointments, items int64
	db.Model(&model.MedicalRecord{}).Where("patient_id = ?", id).Count(&records)
	db.Model(&model.Appointment{}).Where("patient_id = ?", id).Count(&appointments)
	db.Model(&model.PendingItem{}).Where("patient_id = ?", id).Count(&items)
	assert.Zero(t, records)
	assert.Zero(t, appointments)
	assert.Zero(t, items)
}

func TestDeletePatientNotFound(t *testing.T) {
	r, db := setupEndpointTest(t)
	createTestPatient(t, r, "Ana Souza", "2008-07-10")

	w := doJSON(t, r, "DELETE", "/api/patients/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nothing was removed.
	var count int64
	db.Model(&model.Patient{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListPatientsKeywordFilter(t *testing.T) {
	r, _ := setupEndpointTest(t)
	createTestPatient(t, r, "Ana Souza", "2008-07-10")
	createTestPatient(t, r, "Carlos Souza", "1979-02-20")
	createTestPatient(t, r, "Beatriz Ramos", "2012-11-03")

	w := doJSON(t, r, "GET", "/api/patients?keyword=Souza", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, decodeResponse(t, w))

	assert.EqualValues(t, 3, data["total"])
	assert.EqualValues(t, 2, data["total_fetched"])
}
