// controllers/report.go
package controllers

import (
	"net/http"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

type GenerateReportInput struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	ReportType string `json:"reportType" binding:"required,oneof=financial customers employees prints comprehensive"`
}

// ReportController handles report generation
type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GenerateReport builds the requested report type over startDate..endDate
func (rc *ReportController) GenerateReport(c *gin.Context) {
	var input GenerateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgReportInvalid)
		return
	}

	report, err := rc.reports.Generate(c.Request.Context(), input.StartDate, input.EndDate, input.ReportType)
	if err != nil {
		respondServiceError(c, err, utils.MsgReportFail, utils.MsgReportFail)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": utils.MsgReportGenerated,
		"data":    report,
		"success": true,
	})
}
