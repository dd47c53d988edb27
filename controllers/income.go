package controllers

import (
	"net/http"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeRequest is accepted as JSON or as multipart form data with an optional receipt file
type IncomeRequest struct {
	Type          string           `json:"type" form:"type" binding:"required,oneof=prints subscription"`
	PrintType     *string          `json:"printType" form:"printType"`
	Amount        decimal.Decimal  `json:"amount" form:"amount" binding:"required"`
	TotalAmount   *decimal.Decimal `json:"totalAmount" form:"totalAmount"`
	IsDownPayment bool             `json:"isDownPayment" form:"isDownPayment"`
	CustomerID    *string          `json:"customerId" form:"customerId"`
	ReceiptURL    *string          `json:"receiptUrl" form:"receiptUrl"`
	Description   string           `json:"description" form:"description"`
}

type IncomeController struct {
	ledger  *services.LedgerService
	uploads *UploadController
}

func NewIncomeController(ledger *services.LedgerService, uploads *UploadController) *IncomeController {
	return &IncomeController{ledger: ledger, uploads: uploads}
}

// bindIncome binds the request body and stores the receipt, if any
func (ic *IncomeController) bindIncome(c *gin.Context) (services.IncomeInput, bool) {
	var req IncomeRequest
	if isMultipart(c) {
		if !ic.uploads.parseForm(c, utils.MsgIncomeInvalid) {
			return services.IncomeInput{}, false
		}
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgIncomeInvalid)
		return services.IncomeInput{}, false
	}

	customerID, err := optionalUUID(req.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgIncomeInvalid)
		return services.IncomeInput{}, false
	}

	receiptURL, ok := ic.uploads.saveReceipt(c)
	if !ok {
		return services.IncomeInput{}, false
	}
	if receiptURL == nil {
		receiptURL = req.ReceiptURL
	}

	return services.IncomeInput{
		Type:          req.Type,
		PrintType:     req.PrintType,
		Amount:        req.Amount,
		TotalAmount:   req.TotalAmount,
		IsDownPayment: req.IsDownPayment,
		CustomerID:    customerID,
		ReceiptURL:    receiptURL,
		Description:   req.Description,
	}, true
}

// GetIncome lists income entries, optionally limited by startDate and endDate
func (ic *IncomeController) GetIncome(c *gin.Context) {
	window, err := utils.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgInvalidDate)
		return
	}

	entries, err := ic.ledger.ListIncome(c.Request.Context(), window)
	if err != nil {
		respondServiceError(c, err, utils.MsgIncomeNotFound, utils.MsgIncomeFetchFail)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ic *IncomeController) GetPrintIncome(c *gin.Context) {
	entries, err := ic.ledger.ListPrintIncome(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, utils.MsgIncomeNotFound, utils.MsgPrintsFetchFail)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ic *IncomeController) GetIncomeEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := ic.ledger.GetIncome(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, utils.MsgIncomeNotFound, utils.MsgIncomeFetchFail)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateIncome records an entry; a down payment also opens a receivable for the rest
func (ic *IncomeController) CreateIncome(c *gin.Context) {
	input, ok := ic.bindIncome(c)
	if !ok {
		return
	}

	entry, _, err := ic.ledger.CreateIncome(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, utils.MsgIncomeNotFound, utils.MsgIncomeInvalid)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (ic *IncomeController) UpdateIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := ic.bindIncome(c)
	if !ok {
		return
	}

	entry, err := ic.ledger.UpdateIncome(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, utils.MsgIncomeNotFound, utils.MsgIncomeUpdateFail)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (ic *IncomeController) DeleteIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ic.ledger.DeleteIncome(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, utils.MsgIncomeNotFound, utils.MsgIncomeDeleteFail)
		return
	}
	c.Status(http.StatusNoContent)
}
