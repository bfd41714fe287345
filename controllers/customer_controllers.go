package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> newest first
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Order("created_at desc").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// CreateCustomer -> palmId links the customer to an enrolled palm, optional
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	type reqBody struct {
		Name   string  `json:"name" binding:"required"`
		Email  string  `json:"email"`
		Phone  string  `json:"phone"`
		PalmID *string `json:"palmId"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		PalmID:    req.PalmID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New customer created (ID=%d)", customer.ID)

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}
