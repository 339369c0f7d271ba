package endpoint

import (
	"fmt"
	"strconv"

	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListMedicalRecords godoc
// @Summary      List medical records
// @Description  Get all medical records, optionally filtered by patient
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Param        patientId query int false "Filter by patient ID"
// @Success      200 {object} util.APIResponse{data=object} "Medical records retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/medical-records [get]
func ListMedicalRecords(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	query := db.Order("medical_records.date DESC, medical_records.created_at DESC")
	if pid := c.Query("patientId"); pid != "" {
		patientID, err := strconv.Atoi(pid)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid patientId query parameter",
				Err: err,
			})
			return
		}
		query = query.Where("patient_id = ?", patientID)
	}

	var records []model.MedicalRecord
	if err := query.Find(&records).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve medical records",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medical records retrieved",
		Data: map[string]interface{}{"total_fetched": len(records), "medical_records": records},
	})
}

type createMedicalRecordRequest struct {
	PatientID   uint                      `json:"patient_id" example:"1"`
	Type        model.RecordType          `json:"type" example:"exam"`
	Title       string                    `json:"title" example:"Complete blood count"`
	Description string                    `json:"description"`
	Date        string                    `json:"date" example:"2025-01-01"`
	Attachments []string                  `json:"attachments"`
	Exam        *model.ExamDetails        `json:"exam"`
	Medication  *model.MedicationDetails  `json:"medication"`
	Appointment *model.AppointmentDetails `json:"appointment"`
	Pending     *model.PendingDetails     `json:"pending"`
	Credential  *model.CredentialDetails  `json:"credential"`
}

func validateCreateMedicalRecord(req createMedicalRecordRequest) []util.FieldError {
	var errs []util.FieldError
	if req.Type == "" {
		errs = append(errs, util.FieldError{Field: "type", Message: "type is required"})
	} else if !model.IsValidRecordType(req.Type) {
		errs = append(errs, util.FieldError{Field: "type", Message: "type must be one of exam, medication, appointment, history, incident, pending, credential"})
	}
	if req.Date == "" {
		errs = append(errs, util.FieldError{Field: "date", Message: "date is required"})
	}
	return errs
}

// CreateMedicalRecord godoc
// @Summary      Create a medical record
// @Description  Attach a new dated record of one of seven kinds to a patient
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Param        request body createMedicalRecordRequest true "Medical record information"
// @Success      201 {object} util.APIResponse{data=model.MedicalRecord} "Medical record created"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/medical-records [post]
func CreateMedicalRecord(c *gin.Context) {
	req := createMedicalRecordRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	errs := validateCreateMedicalRecord(req)

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	fieldErr, err := requirePatient(db, req.PatientID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create medical record",
			Err: err,
		})
		return
	}
	if fieldErr != nil {
		errs = append(errs, *fieldErr)
	}

	record := model.MedicalRecord{
		PatientID:   req.PatientID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Attachments: req.Attachments,
		Exam:        req.Exam,
		Medication:  req.Medication,
		Appointment: req.Appointment,
		Pending:     req.Pending,
		Credential:  req.Credential,
	}
	if name := record.DetailMismatch(); name != "" {
		errs = append(errs, util.FieldError{Field: name, Message: fmt.Sprintf("%s details do not belong to a record of type %q", name, req.Type)})
	}

	if len(errs) > 0 {
		util.CallValidationError(c, "Invalid data", errs)
		return
	}

	if err := db.Create(&record).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create medical record",
			Err: err,
		})
		return
	}

	recordRecentUpdate(db, record.PatientID, fmt.Sprintf("New %s record registered", record.Type), recordTypeIcons[record.Type])
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventRecordCreated,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Medical record %d (%s) created for patient %d", record.ID, record.Type, record.PatientID),
	})

	util.CallCreated(c, util.APISuccessParams{
		Msg:  "Medical record created",
		Data: record,
	})
}

func getMedicalRecordByID(c *gin.Context, db *gorm.DB) (model.MedicalRecord, error) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing medical record ID",
			Err: fmt.Errorf("medical record ID is required"),
		})
		return model.MedicalRecord{}, fmt.Errorf("medical record ID is required")
	}

	var record model.MedicalRecord
	if err := db.First(&record, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Medical record not found",
			Err: err,
		})
		return model.MedicalRecord{}, err
	}

	return record, nil
}

// GetMedicalRecord godoc
// @Summary      Get a medical record
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Param        id path string true "Medical record ID"
// @Success      200 {object} util.APIResponse{data=model.MedicalRecord} "Medical record retrieved"
// @Failure      404 {object} util.APIResponse "Medical record not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/medical-records/{id} [get]
func GetMedicalRecord(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	record, err := getMedicalRecordByID(c, db)
	if err != nil {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medical record retrieved",
		Data: record,
	})
}

func mergeMedicalRecordUpdate(existing *model.MedicalRecord, req model.UpdateMedicalRecordRequest) []util.FieldError {
	var errs []util.FieldError
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Date != nil {
		if *req.Date == "" {
			errs = append(errs, util.FieldError{Field: "date", Message: "date cannot be empty"})
		} else {
			existing.Date = *req.Date
		}
	}
	if req.Attachments != nil {
		existing.Attachments = *req.Attachments
	}
	if req.Exam != nil {
		existing.Exam = req.Exam
	}
	if req.Medication != nil {
		existing.Medication = req.Medication
	}
	if req.Appointment != nil {
		existing.Appointment = req.Appointment
	}
	if req.Pending != nil {
		existing.Pending = req.Pending
	}
	if req.Credential != nil {
		existing.Credential = req.Credential
	}
	if name := existing.DetailMismatch(); name != "" {
		errs = append(errs, util.FieldError{Field: name, Message: fmt.Sprintf("%s details do not belong to a record of type %q", name, existing.Type)})
	}
	return errs
}

// UpdateMedicalRecord godoc
// @Summary      Update a medical record
// @Description  Merge the provided fields into an existing medical record; absent fields are untouched
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Param        id path string true "Medical record ID"
// @Param        request body model.UpdateMedicalRecordRequest true "Updated medical record information"
// @Success      200 {object} util.APIResponse{data=model.MedicalRecord} "Medical record updated"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      404 {object} util.APIResponse "Medical record not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/medical-records/{id} [put]
func UpdateMedicalRecord(c *gin.Context) {
	req := model.UpdateMedicalRecordRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	existing, err := getMedicalRecordByID(c, db)
	if err != nil {
		return
	}

	if errs := mergeMedicalRecordUpdate(&existing, req); len(errs) > 0 {
		util.CallValidationError(c, "Invalid data", errs)
		return
	}

	if err := db.Save(&existing).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update medical record",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Medical record updated",
		Data: existing,
	})
}

// DeleteMedicalRecord godoc
// @Summary      Delete a medical record
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Param        id path string true "Medical record ID"
// @Success      204 "Medical record deleted"
// @Failure      404 {object} util.APIResponse "Medical record not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/medical-records/{id} [delete]
func DeleteMedicalRecord(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	record, err := getMedicalRecordByID(c, db)
	if err != nil {
		return
	}

	if err := db.Delete(&record).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete medical record",
			Err: err,
		})
		return
	}

	util.CallNoContent(c)
}
