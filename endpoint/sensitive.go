package endpoint

import (
	"crypto/subtle"
	"fmt"

	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
)

type verifySensitivePasswordRequest struct {
	Password string `json:"password"`
}

// VerifySensitivePassword godoc
// @Summary      Verify a patient's sensitive-data password
// @Description  Compare the supplied string with the patient's stored sensitive-data password. This is a display-gate convenience for the client, not authentication; the API never withholds records.
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path string true "Patient ID"
// @Param        request body verifySensitivePasswordRequest true "Password attempt"
// @Success      200 {object} util.APIResponse{data=object} "Verification result"
// @Failure      400 {object} util.APIResponse "Gate not active"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/patients/{id}/verify-sensitive-password [post]
func VerifySensitivePassword(c *gin.Context) {
	req := verifySensitivePasswordRequest{}
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

	patient, err := getPatientByID(c, db)
	if err != nil {
		return
	}

	if !patient.SensitivePasswordActive {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Sensitive data gate is not active for this patient",
			Err: fmt.Errorf("gate inactive"),
		})
		return
	}

	authorized := subtle.ConstantTimeCompare([]byte(req.Password), []byte(patient.SensitivePassword)) == 1

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventGateCheck,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Sensitive gate check for patient %d: authorized=%t", patient.ID, authorized),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Verification completed",
		Data: map[string]interface{}{
			"authorized":      authorized,
			"sensitive_types": model.SensitiveRecordTypes,
		},
	})
}
