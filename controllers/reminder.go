// controllers/reminder.go
package controllers

import (
	"net/http"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// RunReminders runs the subscription sweep immediately instead of waiting for the schedule
func (rc *ReminderController) RunReminders(c *gin.Context) {
	result, err := rc.reminders.Sweep(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgInternalError)
		return
	}
	c.JSON(http.StatusOK, result)
}
