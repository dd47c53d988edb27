package controllers

import (
	"net/http"
	"time"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type EmployeeRequest struct {
	Name     string          `json:"name" binding:"required"`
	Position string          `json:"position"`
	Phone    string          `json:"phone" binding:"omitempty,phone"`
	Salary   decimal.Decimal `json:"salary" binding:"gte=0"`
	HireDate string          `json:"hireDate"`
	Notes    string          `json:"notes"`
}

type EmployeeController struct {
	employees *services.EmployeeService
}

func NewEmployeeController(employees *services.EmployeeService) *EmployeeController {
	return &EmployeeController{employees: employees}
}

func bindEmployee(c *gin.Context) (services.EmployeeInput, bool) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgEmployeeInvalid)
		return services.EmployeeInput{}, false
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		d, err := utils.ParseDate(req.HireDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.MsgInvalidDate)
			return services.EmployeeInput{}, false
		}
		hireDate = &d
	}

	return services.EmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Phone:    req.Phone,
		Salary:   req.Salary,
		HireDate: hireDate,
		Notes:    req.Notes,
	}, true
}

func (ec *EmployeeController) GetEmployees(c *gin.Context) {
	employees, err := ec.employees.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, utils.MsgEmployeeNotFound, utils.MsgEmployeesFetchFail)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (ec *EmployeeController) AddEmployee(c *gin.Context) {
	input, ok := bindEmployee(c)
	if !ok {
		return
	}

	employee, err := ec.employees.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, utils.MsgEmployeeNotFound, utils.MsgEmployeeInvalid)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindEmployee(c)
	if !ok {
		return
	}

	employee, err := ec.employees.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, utils.MsgEmployeeNotFound, utils.MsgEmployeeUpdateFail)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ec.employees.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, utils.MsgEmployeeNotFound, utils.MsgEmployeeDeleteFail)
		return
	}
	c.Status(http.StatusNoContent)
}
