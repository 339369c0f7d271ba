package endpoint

import (
	"fmt"
	"log"

	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"gorm.io/gorm"
)

// recordTypeIcons maps a medical record type to the glyph shown next to its
// activity feed entry.
var recordTypeIcons = map[model.RecordType]string{
	model.RecordExam:        "microscope",
	model.RecordMedication:  "pill",
	model.RecordAppointment: "calendar",
	model.RecordHistory:     "book",
	model.RecordIncident:    "alert-triangle",
	model.RecordPending:     "clock",
	model.RecordCredential:  "key",
}

const patientCreatedIcon = "user-plus"

// recordRecentUpdate appends an activity feed entry for a patient. The append
// is best-effort: an unknown patient silently skips it and a store error is
// logged without being surfaced, so the primary write never fails because of
// the feed.
func recordRecentUpdate(db *gorm.DB, patientID uint, description, icon string) {
	name := util.GetPatientName(db, patientID)
	if name == "" {
		return
	}
	update := model.RecentUpdate{
		PatientID:   patientID,
		PatientName: name,
		Description: description,
		Icon:        icon,
	}
	if err := db.Create(&update).Error; err != nil {
		log.Printf("failed to append recent update for patient %d: %v", patientID, err)
	}
}

// parseListQuery reads the common keyword/limit/offset list parameters.
type listQuery struct {
	Limit   int
	Offset  int
	Keyword string
}

func patientExists(db *gorm.DB, patientID uint) (bool, error) {
	var count int64
	if err := db.Model(&model.Patient{}).Where("id = ?", patientID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// requirePatient validates that patientID references a stored patient and
// returns a field error suitable for a validation response when it does not.
func requirePatient(db *gorm.DB, patientID uint) (*util.FieldError, error) {
	if patientID == 0 {
		return &util.FieldError{Field: "patient_id", Message: "patient_id is required"}, nil
	}
	ok, err := patientExists(db, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if !ok {
		return &util.FieldError{Field: "patient_id", Message: "patient not found"}, nil
	}
	return nil, nil
}
