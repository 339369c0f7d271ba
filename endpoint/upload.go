package endpoint

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/famedhub/famed-api/config"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps a single attachment at 10 MiB.
const maxUploadBytes = 10 << 20

// allowedUploadExtensions is the whitelist of attachment file extensions.
var allowedUploadExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf", ".doc", ".docx"}

// buildUploadName generates a collision-resistant stored filename preserving
// the original extension.
func buildUploadName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

func validateUpload(originalName string, size int64) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || !util.Contains(ext, allowedUploadExtensions) {
		return fmt.Sprintf("file extension %q is not allowed", ext)
	}
	if size > maxUploadBytes {
		return fmt.Sprintf("file exceeds the %d byte limit", maxUploadBytes)
	}
	return ""
}

// UploadFile godoc
// @Summary      Upload an attachment
// @Description  Accept a single multipart file under the field name "file", store it under a generated name and return its public path. Disallowed extensions and oversized files are rejected before any disk write.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Attachment file"
// @Success      200 {object} util.APIResponse{data=object} "File uploaded"
// @Failure      400 {object} util.APIResponse "Upload rejected"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/upload [post]
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing file field",
			Err: err,
		})
		return
	}

	if reason := validateUpload(fileHeader.Filename, fileHeader.Size); reason != "" {
		util.LogUploadRejected(c.ClientIP(), fileHeader.Filename, reason)
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Upload rejected",
			Err: fmt.Errorf("%s", reason),
		})
		return
	}

	uploadDir := config.LoadConfig().UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to store file",
			Err: err,
		})
		return
	}

	storedName := buildUploadName(fileHeader.Filename)
	dest := filepath.Join(uploadDir, storedName)
	if err := c.SaveUploadedFile(fileHeader, dest); err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to store file",
			Err: err,
		})
		return
	}

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventFileUploaded,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Stored upload %s (%d bytes)", storedName, fileHeader.Size),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "File uploaded",
		Data: map[string]interface{}{
			"filename":     storedName,
			"originalName": fileHeader.Filename,
			"path":         "/uploads/" + storedName,
			"size":         fileHeader.Size,
		},
	})
}

// ServeUpload godoc
// @Summary      Serve an uploaded file
// @Description  Return the bytes of a previously uploaded file by its stored name
// @Tags         Upload
// @Produce      octet-stream
// @Param        filename path string true "Stored filename"
// @Success      200 "File bytes"
// @Failure      404 {object} util.APIResponse "File not found"
// @Router       /uploads/{filename} [get]
func ServeUpload(c *gin.Context) {
	filename := c.Param("filename")
	// Reject anything that could escape the uploads directory.
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "File not found",
			Err: fmt.Errorf("invalid filename"),
		})
		return
	}

	path := filepath.Join(config.LoadConfig().UploadDir, filename)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "File not found",
			Err: fmt.Errorf("no such upload: %s", filename),
		})
		return
	}

	c.Status(http.StatusOK)
	c.File(path)
}
