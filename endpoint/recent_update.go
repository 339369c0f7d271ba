package endpoint

import (
	"fmt"
	"strconv"

	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
)

// ListRecentUpdates godoc
// @Summary      List recent updates
// @Description  Get the activity feed entries, newest first
// @Tags         RecentUpdate
// @Accept       json
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} util.APIResponse{data=object} "Recent updates retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/recent-updates [get]
func ListRecentUpdates(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	query := db.Order("recent_updates.created_at DESC, recent_updates.id DESC")
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			query = query.Limit(limit)
		}
	}

	var updates []model.RecentUpdate
	if err := query.Find(&updates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve recent updates",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Recent updates retrieved",
		Data: map[string]interface{}{"total_fetched": len(updates), "recent_updates": updates},
	})
}
