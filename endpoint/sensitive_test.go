package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySensitivePassword(t *testing.T) {
	r, _ := setupEndpointTest(t)
	w := doJSON(t, r, "POST", "/api/patients", map[string]interface{}{
		"full_name":                 "Ana Souza",
		"birth_date":                "2008-07-10",
		"sensitive_password_active": true,
		"sensitive_password":        "1234",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	id := dataField(t, decodeResponse(t, w))["ID"].(float64)

	path := fmt.Sprintf("/api/patients/%d/verify-sensitive-password", int(id))

	w = doJSON(t, r, "POST", path, map[string]interface{}{"password": "1234"})
	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, decodeResponse(t, w))
	assert.Equal(t, true, data["authorized"])

	// The sensitive types are reported so the client knows what to reveal.
	types, ok := data["sensitive_types"].([]interface{})
	if !ok {
		t.Fatalf("expected sensitive_types list, got %v", data["sensitive_types"])
	}
	assert.ElementsMatch(t, []interface{}{"exam", "history", "credential"}, types)

	w = doJSON(t, r, "POST", path, map[string]interface{}{"password": "0000"})
	assert.Equal(t, http.StatusOK, w.Code)
	data = dataField(t, decodeResponse(t, w))
	assert.Equal(t, false, data["authorized"])
}

func TestVerifySensitivePasswordGateInactive(t *testing.T) {
	r, _ := setupEndpointTest(t)
	id := createTestPatient(t, r, "Ana Souza", "2008-07-10")

	w := doJSON(t, r, "POST", fmt.Sprintf("/api/patients/%d/verify-sensitive-password", id), map[string]interface{}{"password": "1234"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifySensitivePasswordUnknownPatient(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w := doJSON(t, r, "POST", "/api/patients/999/verify-sensitive-password", map[string]interface{}{"password": "1234"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
