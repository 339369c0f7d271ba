package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// endpointTestModels defines the standard set of models migrated for endpoint tests
var endpointTestModels = []interface{}{
	&model.Patient{},
	&model.MedicalRecord{},
	&model.Appointment{},
	&model.PendingItem{},
	&model.RecentUpdate{},
	&model.AuditLog{},
}

// setupEndpointTestDB creates a uniquely named in-memory SQLite database with
// all standard models migrated. The unique DSN prevents cross-test
// contamination when tests run in the same process.
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("APPENV", "test")

	dsn := fmt.Sprintf("file:endpointdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}
	if err := db.AutoMigrate(endpointTestModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	util.InitPatientNameCache(0)
	t.Cleanup(func() {
		util.InitPatientNameCache(0)
	})

	return db
}

// setupEndpointTest returns a Gin engine with the API routes registered and a
// database connection configured for endpoint tests.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupEndpointTestDB(t)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	r.GET("/api/patients", ListPatients)
	r.POST("/api/patients", CreatePatient)
	r.GET("/api/patients/:id", GetPatientInfo)
	r.PUT("/api/patients/:id", UpdatePatient)
	r.DELETE("/api/patients/:id", DeletePatient)
	r.POST("/api/patients/:id/verify-sensitive-password", VerifySensitivePassword)

	r.GET("/api/medical-records", ListMedicalRecords)
	r.POST("/api/medical-records", CreateMedicalRecord)
	r.GET("/api/medical-records/:id", GetMedicalRecord)
	r.PUT("/api/medical-records/:id", UpdateMedicalRecord)
	r.DELETE("/api/medical-records/:id", DeleteMedicalRecord)

	r.GET("/api/appointments", ListAppointments)
	r.POST("/api/appointments", CreateAppointment)
	r.PUT("/api/appointments/:id", UpdateAppointment)
	r.DELETE("/api/appointments/:id", DeleteAppointment)

	r.GET("/api/pending-items", ListPendingItems)
	r.POST("/api/pending-items", CreatePendingItem)
	r.PUT("/api/pending-items/:id", UpdatePendingItem)

	r.GET("/api/recent-updates", ListRecentUpdates)

	r.POST("/api/upload", UploadFile)
	r.GET("/uploads/:filename", ServeUpload)

	return r, db
}

// doJSON performs a request with a JSON body against the test router.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals the API envelope from a recorder.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

// dataField returns resp.data as a map, failing the test if it is not one.
func dataField(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object in response, got %T", resp["data"])
	}
	return data
}

// createTestPatient stores a patient through the API and returns its assigned ID.
func createTestPatient(t *testing.T, r *gin.Engine, name, birthDate string) uint {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/patients", map[string]interface{}{
		"full_name":  name,
		"birth_date": birthDate,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create patient: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	data := dataField(t, decodeResponse(t, w))
	id, ok := data["ID"].(float64)
	if !ok {
		t.Fatalf("expected numeric patient ID, got %v", data["ID"])
	}
	return uint(id)
}
