package controllers

import (
	"net/http"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReceivableRequest struct {
	IncomeEntryID *string         `json:"incomeEntryId"`
	CustomerID    *string         `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required,gt=0"`
	PaidAmount    decimal.Decimal `json:"paidAmount" binding:"gte=0"`
	Description   string          `json:"description"`
}

type ReceivableController struct {
	ledger *services.LedgerService
}

func NewReceivableController(ledger *services.LedgerService) *ReceivableController {
	return &ReceivableController{ledger: ledger}
}

func (rc *ReceivableController) GetReceivables(c *gin.Context) {
	receivables, err := rc.ledger.ListReceivables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, utils.MsgReceivableNotFound, utils.MsgReceivablesFetchFail)
		return
	}
	c.JSON(http.StatusOK, receivables)
}

func (rc *ReceivableController) CreateReceivable(c *gin.Context) {
	var req ReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgReceivableInvalid)
		return
	}

	incomeEntryID, err := optionalUUID(req.IncomeEntryID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgReceivableInvalid)
		return
	}
	customerID, err := optionalUUID(req.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgReceivableInvalid)
		return
	}

	receivable, err := rc.ledger.CreateReceivable(c.Request.Context(), services.ReceivableInput{
		IncomeEntryID: incomeEntryID,
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		TotalAmount:   req.TotalAmount,
		PaidAmount:    req.PaidAmount,
		Description:   req.Description,
	})
	if err != nil {
		respondServiceError(c, err, utils.MsgReceivableNotFound, utils.MsgReceivableInvalid)
		return
	}
	c.JSON(http.StatusCreated, receivable)
}

// PayReceivable settles the remaining balance and books it as income
func (rc *ReceivableController) PayReceivable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	receivable, err := rc.ledger.PayReceivable(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, utils.MsgReceivableNotFound, utils.MsgReceivablePayFail)
		return
	}
	c.JSON(http.StatusOK, receivable)
}

func (rc *ReceivableController) DeleteReceivable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.ledger.DeleteReceivable(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, utils.MsgReceivableNotFound, utils.MsgReceivableDeleteFail)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, utils.MsgReceivableDeleted)
}
