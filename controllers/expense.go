package controllers

import (
	"net/http"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	Reason     string          `json:"reason" form:"reason" binding:"required"`
	Amount     decimal.Decimal `json:"amount" form:"amount" binding:"required,gt=0"`
	Notes      string          `json:"notes" form:"notes"`
	ReceiptURL *string         `json:"receiptUrl" form:"receiptUrl"`
}

type ExpenseController struct {
	expenses *services.ExpenseService
	uploads  *UploadController
}

func NewExpenseController(expenses *services.ExpenseService, uploads *UploadController) *ExpenseController {
	return &ExpenseController{expenses: expenses, uploads: uploads}
}

func (ec *ExpenseController) bindExpense(c *gin.Context) (services.ExpenseInput, bool) {
	var req ExpenseRequest
	if isMultipart(c) {
		if !ec.uploads.parseForm(c, utils.MsgExpenseInvalid) {
			return services.ExpenseInput{}, false
		}
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgExpenseInvalid)
		return services.ExpenseInput{}, false
	}

	receiptURL, ok := ec.uploads.saveReceipt(c)
	if !ok {
		return services.ExpenseInput{}, false
	}
	if receiptURL == nil {
		receiptURL = req.ReceiptURL
	}

	return services.ExpenseInput{
		Reason:     req.Reason,
		Amount:     req.Amount,
		Notes:      req.Notes,
		ReceiptURL: receiptURL,
	}, true
}

func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	window, err := utils.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgInvalidDate)
		return
	}

	expenses, err := ec.expenses.List(c.Request.Context(), window)
	if err != nil {
		respondServiceError(c, err, utils.MsgExpenseNotFound, utils.MsgExpensesFetchFail)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (ec *ExpenseController) GetExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := ec.expenses.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, utils.MsgExpenseNotFound, utils.MsgExpensesFetchFail)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	input, ok := ec.bindExpense(c)
	if !ok {
		return
	}

	expense, err := ec.expenses.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, utils.MsgExpenseNotFound, utils.MsgExpenseInvalid)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := ec.bindExpense(c)
	if !ok {
		return
	}

	expense, err := ec.expenses.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, utils.MsgExpenseNotFound, utils.MsgExpenseUpdateFail)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ec.expenses.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, utils.MsgExpenseNotFound, utils.MsgExpenseDeleteFail)
		return
	}
	c.Status(http.StatusNoContent)
}
