package controllers

import (
	"net/http"
	"strconv"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

// CustomerRequest defines the expected JSON structure for creating or updating a customer
type CustomerRequest struct {
	Name             string `json:"name" binding:"required"`
	Phone            string `json:"phone" binding:"omitempty,phone"`
	SubscriptionType string `json:"subscriptionType"`
	ExpiryDate       string `json:"expiryDate" binding:"required"` // YYYY-MM-DD or RFC3339
	IsActive         *bool  `json:"isActive"`
	Notes            string `json:"notes"`
}

type CustomerController struct {
	customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

func bindCustomer(c *gin.Context) (services.CustomerInput, bool) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgCustomerInvalid)
		return services.CustomerInput{}, false
	}

	expiry, err := utils.ParseDate(req.ExpiryDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgInvalidDate)
		return services.CustomerInput{}, false
	}

	return services.CustomerInput{
		Name:             req.Name,
		Phone:            req.Phone,
		SubscriptionType: req.SubscriptionType,
		ExpiryDate:       expiry,
		IsActive:         req.IsActive,
		Notes:            req.Notes,
	}, true
}

// GetCustomers retrieves all customers, newest first
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := cc.customers.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgCustomersFetchFail)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := cc.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgCustomersFetchFail)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	input, ok := bindCustomer(c)
	if !ok {
		return
	}

	customer, err := cc.customers.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgCustomerInvalid)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindCustomer(c)
	if !ok {
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgCustomerUpdateFail)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgCustomerDeleteFail)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, utils.MsgCustomerDeleted)
}

// RenewSubscription extends the customer's expiry date by one year
func (cc *CustomerController) RenewSubscription(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := cc.customers.Renew(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgRenewFail)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetExpiringCustomers lists customers whose subscription ends within :days days
func (cc *CustomerController) GetExpiringCustomers(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgCustomerInvalid)
		return
	}

	customers, err := cc.customers.Expiring(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err, utils.MsgCustomerNotFound, utils.MsgExpiringFetchFail)
		return
	}
	c.JSON(http.StatusOK, customers)
}
