package endpoint

import (
	"fmt"

	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListAppointments godoc
// @Summary      List appointments
// @Description  Get the standalone appointments ordered soonest first. This collection feeds the dashboard's upcoming-appointments panel; medical records of type "appointment" are separate timeline entries.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments [get]
func ListAppointments(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var appointments []model.Appointment
	if err := db.Order("appointments.date ASC, appointments.time ASC").Find(&appointments).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve appointments",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total_fetched": len(appointments), "appointments": appointments},
	})
}

type createAppointmentRequest struct {
	PatientID   uint   `json:"patient_id" example:"1"`
	PatientName string `json:"patient_name" example:"Ana Souza"`
	Specialty   string `json:"specialty" example:"Cardiology"`
	Doctor      string `json:"doctor" example:"Dr. Lima"`
	Date        string `json:"date" example:"2025-03-15"`
	Time        string `json:"time" example:"14:30"`
	Location    string `json:"location" example:"Santa Casa, room 12"`
}

// CreateAppointment godoc
// @Summary      Create an appointment
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        request body createAppointmentRequest true "Appointment information"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments [post]
func CreateAppointment(c *gin.Context) {
	req := createAppointmentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	var errs []util.FieldError
	if req.Date == "" {
		errs = append(errs, util.FieldError{Field: "date", Message: "date is required"})
	}
	if len(errs) > 0 {
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

	appointment := model.Appointment{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Specialty:   req.Specialty,
		Doctor:      req.Doctor,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	}
	// Prefer the stored patient name over whatever the client sent.
	if name := util.GetPatientName(db, req.PatientID); name != "" {
		appointment.PatientName = name
	}

	if err := db.Create(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create appointment",
			Err: err,
		})
		return
	}

	util.CallCreated(c, util.APISuccessParams{
		Msg:  "Appointment created",
		Data: appointment,
	})
}

func getAppointmentByID(c *gin.Context, db *gorm.DB) (model.Appointment, error) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing appointment ID",
			Err: fmt.Errorf("appointment ID is required"),
		})
		return model.Appointment{}, fmt.Errorf("appointment ID is required")
	}

	var appointment model.Appointment
	if err := db.First(&appointment, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Appointment not found",
			Err: err,
		})
		return model.Appointment{}, err
	}

	return appointment, nil
}

// UpdateAppointment godoc
// @Summary      Update an appointment
// @Description  Merge the provided fields into an existing appointment; absent fields are untouched
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Param        request body model.UpdateAppointmentRequest true "Updated appointment information"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/{id} [put]
func UpdateAppointment(c *gin.Context) {
	req := model.UpdateAppointmentRequest{}
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

	existing, err := getAppointmentByID(c, db)
	if err != nil {
		return
	}

	if req.Specialty != nil {
		existing.Specialty = *req.Specialty
	}
	if req.Doctor != nil {
		existing.Doctor = *req.Doctor
	}
	if req.Date != nil {
		if *req.Date == "" {
			util.CallValidationError(c, "Invalid data", []util.FieldError{{Field: "date", Message: "date cannot be empty"}})
			return
		}
		existing.Date = *req.Date
	}
	if req.Time != nil {
		existing.Time = *req.Time
	}
	if req.Location != nil {
		existing.Location = *req.Location
	}

	if err := db.Save(&existing).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment updated",
		Data: existing,
	})
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID"
// @Success      204 "Appointment deleted"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	appointment, err := getAppointmentByID(c, db)
	if err != nil {
		return
	}

	if err := db.Delete(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete appointment",
			Err: err,
		})
		return
	}

	util.CallNoContent(c)
}
