package endpoint

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/famedhub/famed-api/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupUploadTest points the upload directory at a temp dir for the duration
// of the test. The config singleton is reset so the new env takes effect.
func setupUploadTest(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)
	config.ResetConfigForTesting()
	t.Cleanup(config.ResetConfigForTesting)

	r, _ := setupEndpointTest(t)
	return r, dir
}

func doUpload(t *testing.T, r *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadAndServeRoundTrip(t *testing.T) {
	r, dir := setupUploadTest(t)

	content := []byte("\x89PNG fake image bytes")
	w := doUpload(t, r, "scan.png", content)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataField(t, decodeResponse(t, w))
	assert.Equal(t, "scan.png", data["originalName"])
	assert.EqualValues(t, len(content), data["size"])

	storedName, ok := data["filename"].(string)
	if !ok || storedName == "" {
		t.Fatalf("expected generated filename, got %v", data["filename"])
	}
	assert.Equal(t, "/uploads/"+storedName, data["path"])
	assert.Equal(t, ".png", filepath.Ext(storedName))

	// The stored bytes and the served bytes match what was sent.
	onDisk, err := os.ReadFile(filepath.Join(dir, storedName))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	assert.Equal(t, content, onDisk)

	req := httptest.NewRequest("GET", "/uploads/"+storedName, nil)
	served := httptest.NewRecorder()
	r.ServeHTTP(served, req)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, content, served.Body.Bytes())
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	r, dir := setupUploadTest(t)

	w := doUpload(t, r, "malware.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was written before the rejection.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	assert.Empty(t, entries)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	r, dir := setupUploadTest(t)

	big := make([]byte, maxUploadBytes+1)
	w := doUpload(t, r, "huge.png", big)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	assert.Empty(t, entries)
}

func TestUploadMissingFileField(t *testing.T) {
	r, _ := setupUploadTest(t)

	req := httptest.NewRequest("POST", "/api/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeUploadNotFound(t *testing.T) {
	r, _ := setupUploadTest(t)

	req := httptest.NewRequest("GET", "/uploads/missing.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeUploadRejectsTraversal(t *testing.T) {
	r, _ := setupUploadTest(t)

	req := httptest.NewRequest("GET", "/uploads/..%2F..%2Fetc%2Fpasswd", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
