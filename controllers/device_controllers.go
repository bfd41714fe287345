package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/utils"
	"gorm.io/gorm"
)

type DeviceController struct {
	DB *gorm.DB
}

func NewDeviceController(db *gorm.DB) *DeviceController {
	return &DeviceController{DB: db}
}

// RegisterDevice -> issues the device's bearer credential. The raw token is
// part of this response and nowhere else; every later listing hides it.
func (dc *DeviceController) RegisterDevice(c *gin.Context) {
	type reqBody struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// 256-bit token, 64 hex chars
	token, err := utils.GenerateToken(32)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	device := models.PalmDevice{
		Name:      req.Name,
		Location:  req.Location,
		APIToken:  token,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := dc.DB.Create(&device).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Palm device registered (ID=%d) %s @ %s", device.ID, device.Name, device.Location)

	c.JSON(http.StatusOK, gin.H{
		"device": gin.H{
			"id":        device.ID,
			"name":      device.Name,
			"location":  device.Location,
			"apiToken":  device.APIToken,
			"isActive":  device.IsActive,
			"createdAt": device.CreatedAt,
		},
	})
}

// GetAllDevices -> public fields only, the api token never leaves the
// registration response
func (dc *DeviceController) GetAllDevices(c *gin.Context) {
	var devices []models.PalmDevice
	if err := dc.DB.Order("created_at asc").Find(&devices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// UpdateDevice -> partial update of name/location
func (dc *DeviceController) UpdateDevice(c *gin.Context) {
	idStr := c.Param("device_id")
	id, _ := strconv.Atoi(idStr)

	var device models.PalmDevice
	if err := dc.DB.First(&device, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		device.Name = *req.Name
	}
	if req.Location != nil {
		device.Location = *req.Location
	}
	device.UpdatedAt = time.Now()

	if err := dc.DB.Save(&device).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"device": device})
}

// CreateDeviceAuthLog -> bearer-authenticated write of one auth attempt.
// Absent fields fall back to the device record and to a failed attempt.
func (dc *DeviceController) CreateDeviceAuthLog(c *gin.Context) {
	deviceVal, exists := c.Get("device")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("device not resolved"))
		return
	}
	device := deviceVal.(*models.PalmDevice)

	type reqBody struct {
		DeviceType string `json:"deviceType"`
		Location   string `json:"location"`
		Success    *bool  `json:"success"`
		Reason     string `json:"reason"`
	}

	var req reqBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	entry := models.DeviceAuthenticationLog{
		PalmDeviceID: &device.ID,
		DeviceType:   req.DeviceType,
		Location:     req.Location,
		Reason:       req.Reason,
		CreatedAt:    time.Now(),
	}
	if entry.DeviceType == "" {
		entry.DeviceType = "kiosk"
	}
	if entry.Location == "" {
		entry.Location = device.Location
	}
	if req.Success != nil {
		entry.Success = *req.Success
	}

	if err := dc.DB.Create(&entry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "log": entry})
}

// GetDeviceLogs -> the most recent 1000 device auth attempts, flattened with
// the owning device's name and location when the row is linked
func (dc *DeviceController) GetDeviceLogs(c *gin.Context) {
	var logs []models.DeviceAuthenticationLog
	if err := dc.DB.Preload("PalmDevice").
		Order("created_at desc").
		Limit(1000).
		Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	flattened := make([]gin.H, 0, len(logs))
	for _, entry := range logs {
		row := gin.H{
			"id":           entry.ID,
			"palmDeviceId": entry.PalmDeviceID,
			"deviceType":   entry.DeviceType,
			"location":     entry.Location,
			"success":      entry.Success,
			"reason":       entry.Reason,
			"createdAt":    entry.CreatedAt,
		}
		if entry.PalmDevice != nil {
			row["deviceName"] = entry.PalmDevice.Name
			row["deviceLocation"] = entry.PalmDevice.Location
		}
		flattened = append(flattened, row)
	}

	c.JSON(http.StatusOK, flattened)
}
