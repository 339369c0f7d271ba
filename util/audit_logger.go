package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/famedhub/famed-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of audit events
type AuditEventType string

const (
	EventEndpointCall      AuditEventType = "ENDPOINT_CALL"
	EventPatientCreated    AuditEventType = "PATIENT_CREATED"
	EventPatientDeleted    AuditEventType = "PATIENT_DELETED"
	EventRecordCreated     AuditEventType = "RECORD_CREATED"
	EventFileUploaded      AuditEventType = "FILE_UPLOADED"
	EventUploadRejected    AuditEventType = "UPLOAD_REJECTED"
	EventRateLimitExceeded AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventGateCheck         AuditEventType = "SENSITIVE_GATE_CHECK"
)

// AuditEvent represents a request event to be logged
type AuditEvent struct {
	EventType AuditEventType
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var auditLogger *log.Logger
var auditDB *gorm.DB

// SetAuditLoggerDB sets a gorm DB instance used by the audit logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

func init() {
	auditLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent logs an audit event to stdout and best-effort persists it.
// Persistence failure never fails the request that produced the event.
func LogAuditEvent(event AuditEvent) {
	msg := fmt.Sprintf("Event=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log the Details map directly to avoid injection
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	auditLogger.Println(msg)

	if auditDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	// Attempt to resolve city/country for the IP (best-effort, local DB then cache)
	city, country := GetIPLocation(event.IP)
	var location string
	switch {
	case city != "" && country != "":
		location = fmt.Sprintf("%s/%s", city, country)
	case country != "":
		location = country
	case city != "":
		location = city
	}

	entry := model.AuditLog{
		EventType: string(event.EventType),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(location),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}

	if err := auditDB.Create(&entry).Error; err != nil {
		auditLogger.Printf("Failed to persist audit event: %v", err)
	}
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogUploadRejected logs an upload rejected before any disk write
func LogUploadRejected(ip, filename, reason string) {
	LogAuditEvent(AuditEvent{
		EventType: EventUploadRejected,
		IP:        ip,
		Message:   fmt.Sprintf("Upload of %q rejected: %s", filename, reason),
	})
}

// GetAuditLoggerForTest returns the current audit logger for testing purposes
func GetAuditLoggerForTest() *log.Logger {
	return auditLogger
}

// SetAuditLoggerForTest sets a custom logger for testing purposes
func SetAuditLoggerForTest(logger *log.Logger) {
	auditLogger = logger
}
