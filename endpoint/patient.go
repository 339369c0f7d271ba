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

func parsePatientListQuery(c *gin.Context) listQuery {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return listQuery{
		Limit:   limit,
		Offset:  offset,
		Keyword: c.Query("keyword"),
	}
}

func fetchPatients(db *gorm.DB, q listQuery) ([]model.Patient, int64, error) {
	var patients []model.Patient
	var total int64
	query := db.Order("patients.created_at DESC")

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if q.Keyword != "" {
		kw := "%" + q.Keyword + "%"
		query = query.Where("full_name LIKE ? OR attending_doctor LIKE ? OR insurance_plan LIKE ?", kw, kw, kw)
	}

	if err := query.Find(&patients).Error; err != nil {
		return nil, 0, err
	}

	db.Model(&model.Patient{}).Count(&total)
	return patients, total, nil
}

// ListPatients godoc
// @Summary      List all patients
// @Description  Get the registered family members with optional keyword filtering
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        keyword query string false "Search keyword for name, doctor or insurance plan"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients [get]
func ListPatients(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	patients, total, err := fetchPatients(db, parsePatientListQuery(c))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve patients",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(patients), "patients": patients},
	})
}

type createPatientRequest struct {
	FullName                string   `json:"full_name" example:"Ana Souza"`
	BirthDate               string   `json:"birth_date" example:"2008-07-10"`
	BloodType               string   `json:"blood_type" example:"O+"`
	AttendingDoctor         string   `json:"attending_doctor" example:"Dr. Lima"`
	Allergies               []string `json:"allergies" example:"Penicillin,Dust"`
	AvatarURL               string   `json:"avatar_url"`
	EmergencyContactName    string   `json:"emergency_contact_name"`
	EmergencyContactPhone   string   `json:"emergency_contact_phone"`
	InsurancePlan           string   `json:"insurance_plan"`
	InsuranceNumber         string   `json:"insurance_number"`
	InsuranceCardFrontURL   string   `json:"insurance_card_front_url"`
	InsuranceCardBackURL    string   `json:"insurance_card_back_url"`
	IDCardFrontURL          string   `json:"id_card_front_url"`
	IDCardBackURL           string   `json:"id_card_back_url"`
	SensitivePasswordActive bool     `json:"sensitive_password_active"`
	SensitivePassword       string   `json:"sensitive_password"`
}

func validateCreatePatient(req createPatientRequest) []util.FieldError {
	var errs []util.FieldError
	if util.NormalizeName(req.FullName) == "" {
		errs = append(errs, util.FieldError{Field: "full_name", Message: "full_name is required"})
	}
	if req.BirthDate == "" {
		errs = append(errs, util.FieldError{Field: "birth_date", Message: "birth_date is required"})
	}
	if !model.IsValidBloodType(req.BloodType) {
		errs = append(errs, util.FieldError{Field: "blood_type", Message: "blood_type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-"})
	}
	return errs
}

func buildPatientModel(req createPatientRequest) model.Patient {
	p := model.Patient{
		FullName:                util.NormalizeName(req.FullName),
		BirthDate:               req.BirthDate,
		BloodType:               req.BloodType,
		AttendingDoctor:         req.AttendingDoctor,
		Allergies:               req.Allergies,
		AvatarURL:               req.AvatarURL,
		EmergencyContactName:    req.EmergencyContactName,
		EmergencyContactPhone:   req.EmergencyContactPhone,
		InsurancePlan:           req.InsurancePlan,
		InsuranceNumber:         req.InsuranceNumber,
		InsuranceCardFrontURL:   req.InsuranceCardFrontURL,
		InsuranceCardBackURL:    req.InsuranceCardBackURL,
		IDCardFrontURL:          req.IDCardFrontURL,
		IDCardBackURL:           req.IDCardBackURL,
		SensitivePasswordActive: req.SensitivePasswordActive,
		SensitivePassword:       req.SensitivePassword,
	}
	// The password only exists while the gate is active.
	if !p.SensitivePasswordActive {
		p.SensitivePassword = ""
	}
	return p
}

// CreatePatient godoc
// @Summary      Register a new patient
// @Description  Register a new family member
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body createPatientRequest true "Patient information"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients [post]
func CreatePatient(c *gin.Context) {
	req := createPatientRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	if errs := validateCreatePatient(req); len(errs) > 0 {
		util.CallValidationError(c, "Invalid data", errs)
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

	patient := buildPatientModel(req)
	if err := db.Create(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create patient",
			Err: err,
		})
		return
	}

	util.PatientNameCacheSet(patient.ID, patient.FullName)
	recordRecentUpdate(db, patient.ID, fmt.Sprintf("%s was added to the family", patient.FullName), patientCreatedIcon)
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventPatientCreated,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Patient %d created", patient.ID),
	})

	util.CallCreated(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: patient,
	})
}

func getPatientByID(c *gin.Context, db *gorm.DB) (model.Patient, error) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing patient ID",
			Err: fmt.Errorf("patient ID is required"),
		})
		return model.Patient{}, fmt.Errorf("patient ID is required")
	}

	var patient model.Patient
	if err := db.First(&patient, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Patient not found",
			Err: err,
		})
		return model.Patient{}, err
	}

	return patient, nil
}

// GetPatientInfo godoc
// @Summary      Get patient information
// @Description  Get detailed information about a specific patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients/{id} [get]
func GetPatientInfo(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	patient, err := getPatientByID(c, db)
	if err != nil {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: patient,
	})
}

func mergePatientUpdate(existing *model.Patient, req model.UpdatePatientRequest) []util.FieldError {
	var errs []util.FieldError
	if req.FullName != nil {
		name := util.NormalizeName(*req.FullName)
		if name == "" {
			errs = append(errs, util.FieldError{Field: "full_name", Message: "full_name cannot be empty"})
		} else {
			existing.FullName = name
		}
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			errs = append(errs, util.FieldError{Field: "birth_date", Message: "birth_date cannot be empty"})
		} else {
			existing.BirthDate = *req.BirthDate
		}
	}
	if req.BloodType != nil {
		if !model.IsValidBloodType(*req.BloodType) {
			errs = append(errs, util.FieldError{Field: "blood_type", Message: "invalid blood_type"})
		} else {
			existing.BloodType = *req.BloodType
		}
	}
	if req.AttendingDoctor != nil {
		existing.AttendingDoctor = *req.AttendingDoctor
	}
	if req.Allergies != nil {
		existing.Allergies = *req.Allergies
	}
	if req.AvatarURL != nil {
		existing.AvatarURL = *req.AvatarURL
	}
	if req.EmergencyContactName != nil {
		existing.EmergencyContactName = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		existing.EmergencyContactPhone = *req.EmergencyContactPhone
	}
	if req.InsurancePlan != nil {
		existing.InsurancePlan = *req.InsurancePlan
	}
	if req.InsuranceNumber != nil {
		existing.InsuranceNumber = *req.InsuranceNumber
	}
	if req.InsuranceCardFrontURL != nil {
		existing.InsuranceCardFrontURL = *req.InsuranceCardFrontURL
	}
	if req.InsuranceCardBackURL != nil {
		existing.InsuranceCardBackURL = *req.InsuranceCardBackURL
	}
	if req.IDCardFrontURL != nil {
		existing.IDCardFrontURL = *req.IDCardFrontURL
	}
	if req.IDCardBackURL != nil {
		existing.IDCardBackURL = *req.IDCardBackURL
	}
	if req.SensitivePassword != nil {
		existing.SensitivePassword = *req.SensitivePassword
	}
	if req.SensitivePasswordActive != nil {
		existing.SensitivePasswordActive = *req.SensitivePasswordActive
	}
	// Turning the gate off always clears the stored password.
	if !existing.SensitivePasswordActive {
		existing.SensitivePassword = ""
	}
	return errs
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  Merge the provided fields into an existing patient; absent fields are untouched
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path string true "Patient ID"
// @Param        request body model.UpdatePatientRequest true "Updated patient information"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients/{id} [put]
func UpdatePatient(c *gin.Context) {
	req := model.UpdatePatientRequest{}
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

	existing, err := getPatientByID(c, db)
	if err != nil {
		return
	}

	if errs := mergePatientUpdate(&existing, req); len(errs) > 0 {
		util.CallValidationError(c, "Invalid data", errs)
		return
	}

	if err := db.Save(&existing).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update patient",
			Err: err,
		})
		return
	}

	util.PatientNameCacheSet(existing.ID, existing.FullName)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: existing,
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Delete a patient and cascade-delete their medical records, appointments and pending items
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path string true "Patient ID"
// @Success      204 "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients/{id} [delete]
func DeletePatient(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	patient, err := getPatientByID(c, db)
	if err != nil {
		return
	}

	// Cascade inside one transaction so a failed step leaves no orphans.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.MedicalRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.PendingItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&patient).Error
	})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete patient",
			Err: err,
		})
		return
	}

	util.PatientNameCacheInvalidate(patient.ID)
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventPatientDeleted,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Patient %d deleted", patient.ID),
	})

	util.CallNoContent(c)
}
