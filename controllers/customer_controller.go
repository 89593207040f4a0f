package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// CustomerRequest represents the customer create/update payload
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// validateCustomerFields collects every invalid field so the caller sees
// all problems in one response.
func validateCustomerFields(req *CustomerRequest) utils.FieldValidationErrors {
	var fieldErrs utils.FieldValidationErrors
	if ok, msg := utils.ValidateName(req.Name); !ok {
		fieldErrs = append(fieldErrs, utils.FieldValidationError{Field: "name", Message: msg})
	}
	if ok, msg := utils.ValidatePhone(req.Phone); !ok {
		fieldErrs = append(fieldErrs, utils.FieldValidationError{Field: "phone", Message: msg})
	}
	if req.Email != "" {
		if ok, msg := utils.ValidateEmail(req.Email); !ok {
			fieldErrs = append(fieldErrs, utils.FieldValidationError{Field: "email", Message: msg})
		}
	}
	return fieldErrs
}

// CreateCustomer registers a customer record
func CreateCustomer(c *gin.Context) {
	utils.LogInfo("CreateCustomer called")
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid customer request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if fieldErrs := validateCustomerFields(&req); len(fieldErrs) > 0 {
		utils.ValidationError(c, "Validation failed", fieldErrs)
		return
	}

	var existing models.Customer
	if err := config.DB.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		utils.LogError("Customer already exists with phone: %s", req.Phone)
		utils.Conflict(c, "A customer with this phone number already exists", nil)
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: utils.SanitizeString(req.Address),
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.LogError("Failed to create customer: %v", err)
		utils.InternalServerError(c, "Failed to create customer", err.Error())
		return
	}

	utils.LogInfo("Customer created: %s (ID: %d)", customer.Name, customer.ID)
	utils.Created(c, "Customer created successfully", customer)
}

// ListCustomers returns customers with search and pagination
func ListCustomers(c *gin.Context) {
	utils.LogInfo("ListCustomers called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Customer{})
	if search := c.Query("search"); search != "" {
		term := "%" + utils.SanitizeString(search) + "%"
		query = query.Where("name ILIKE ? OR phone LIKE ? OR email ILIKE ?", term, term, term)
	}
	if c.Query("include_blocked") != "true" {
		query = query.Where("blocked = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count customers: %v", err)
		utils.InternalServerError(c, "Failed to fetch customers", err.Error())
		return
	}

	var customers []models.Customer
	if err := query.Order("name ASC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&customers).Error; err != nil {
		utils.LogError("Failed to fetch customers: %v", err)
		utils.InternalServerError(c, "Failed to fetch customers", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Customers retrieved successfully", customers, total, pagination.Page, pagination.Limit)
}

// GetCustomer returns one customer with recent orders
func GetCustomer(c *gin.Context) {
	utils.LogInfo("GetCustomer called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid customer ID", nil)
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, uint(id)).Error; err != nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	var orders []models.Order
	if err := config.DB.Where("customer_id = ?", customer.ID).Order("created_at DESC").Limit(10).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for customer %d: %v", customer.ID, err)
	}

	utils.Success(c, "Customer retrieved successfully", gin.H{
		"customer":      customer,
		"recent_orders": orders,
	})
}

// UpdateCustomer handles customer updates
func UpdateCustomer(c *gin.Context) {
	utils.LogInfo("UpdateCustomer called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid customer ID", nil)
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid customer request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, uint(id)).Error; err != nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if fieldErrs := validateCustomerFields(&req); len(fieldErrs) > 0 {
		utils.ValidationError(c, "Validation failed", fieldErrs)
		return
	}

	var existing models.Customer
	if err := config.DB.Where("phone = ? AND id != ?", req.Phone, customer.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Another customer already uses this phone number", nil)
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = utils.SanitizeString(req.Address)
	if err := config.DB.Save(&customer).Error; err != nil {
		utils.LogError("Failed to update customer %d: %v", customer.ID, err)
		utils.InternalServerError(c, "Failed to update customer", err.Error())
		return
	}

	utils.Success(c, "Customer updated successfully", customer)
}

// ToggleCustomerBlock blocks or unblocks a customer. Blocked customers
// are skipped by broadcasts and cannot check out.
func ToggleCustomerBlock(c *gin.Context) {
	utils.LogInfo("ToggleCustomerBlock called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid customer ID", nil)
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, uint(id)).Error; err != nil {
		utils.NotFound(c, "Customer not found")
		return
	}

	customer.Blocked = !customer.Blocked
	if err := config.DB.Save(&customer).Error; err != nil {
		utils.LogError("Failed to toggle block for customer %d: %v", customer.ID, err)
		utils.InternalServerError(c, "Failed to update customer", err.Error())
		return
	}

	message := "Customer unblocked successfully"
	if customer.Blocked {
		message = "Customer blocked successfully"
	}
	utils.Success(c, message, gin.H{"id": customer.ID, "blocked": customer.Blocked})
}
