package endpoint

import (
	"fmt"
	"strconv"

	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
)

// ListPendingItems godoc
// @Summary      List pending items
// @Description  Get all pending items, optionally filtered by patient
// @Tags         PendingItem
// @Accept       json
// @Produce      json
// @Param        patientId query int false "Filter by patient ID"
// @Success      200 {object} util.APIResponse{data=object} "Pending items retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/pending-items [get]
func ListPendingItems(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	query := db.Order("pending_items.created_at DESC")
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

	var items []model.PendingItem
	if err := query.Find(&items).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve pending items",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Pending items retrieved",
		Data: map[string]interface{}{"total_fetched": len(items), "pending_items": items},
	})
}

type createPendingItemRequest struct {
	PatientID   uint   `json:"patient_id" example:"1"`
	Title       string `json:"title" example:"Schedule dentist"`
	Description string `json:"description"`
	Priority    string `json:"priority" example:"medium"`
}

// CreatePendingItem godoc
// @Summary      Create a pending item
// @Tags         PendingItem
// @Accept       json
// @Produce      json
// @Param        request body createPendingItemRequest true "Pending item information"
// @Success      201 {object} util.APIResponse{data=model.PendingItem} "Pending item created"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/pending-items [post]
func CreatePendingItem(c *gin.Context) {
	req := createPendingItemRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	var errs []util.FieldError
	if util.NormalizeName(req.Title) == "" {
		errs = append(errs, util.FieldError{Field: "title", Message: "title is required"})
	}
	if !model.IsValidPriority(req.Priority) {
		errs = append(errs, util.FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
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

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	item := model.PendingItem{
		PatientID:   req.PatientID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
	}
	if err := db.Create(&item).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create pending item",
			Err: err,
		})
		return
	}

	util.CallCreated(c, util.APISuccessParams{
		Msg:  "Pending item created",
		Data: item,
	})
}

// UpdatePendingItem godoc
// @Summary      Update a pending item
// @Description  Merge the provided fields into an existing pending item, typically to toggle completion
// @Tags         PendingItem
// @Accept       json
// @Produce      json
// @Param        id path string true "Pending item ID"
// @Param        request body model.UpdatePendingItemRequest true "Updated pending item information"
// @Success      200 {object} util.APIResponse{data=model.PendingItem} "Pending item updated"
// @Failure      400 {object} util.APIResponse "Invalid data"
// @Failure      404 {object} util.APIResponse "Pending item not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/pending-items/{id} [put]
func UpdatePendingItem(c *gin.Context) {
	req := model.UpdatePendingItemRequest{}
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

	var existing model.PendingItem
	if err := db.First(&existing, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Pending item not found",
			Err: err,
		})
		return
	}

	var errs []util.FieldError
	if req.Title != nil {
		if util.NormalizeName(*req.Title) == "" {
			errs = append(errs, util.FieldError{Field: "title", Message: "title cannot be empty"})
		} else {
			existing.Title = *req.Title
		}
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Priority != nil {
		if *req.Priority == "" || !model.IsValidPriority(*req.Priority) {
			errs = append(errs, util.FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
		} else {
			existing.Priority = *req.Priority
		}
	}
	if req.Completed != nil {
		existing.Completed = *req.Completed
	}
	if len(errs) > 0 {
		util.CallValidationError(c, "Invalid data", errs)
		return
	}

	if err := db.Save(&existing).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update pending item",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Pending item updated",
		Data: existing,
	})
}
