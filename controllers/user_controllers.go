package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetAllUsers -> summaries only, no cards or templates
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("created_at asc").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	summaries := make([]gin.H, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, gin.H{
			"id":          user.ID,
			"displayName": user.DisplayName,
			"email":       user.Email,
			"createdAt":   user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// GetUserByID -> full record with cards and palm templates
func (uc *UserController) GetUserByID(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var user models.User
	if err := uc.DB.Preload("Cards").
		Preload("PalmTemplates").
		First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SearchUserByName -> case-insensitive exact match on displayName
func (uc *UserController) SearchUserByName(c *gin.Context) {
	name := c.Query("displayName")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("displayName query parameter is required"))
		return
	}

	var user models.User
	if err := uc.DB.Where("LOWER(display_name) = ?", strings.ToLower(name)).
		First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUserCards
func (uc *UserController) GetUserCards(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var cards []models.Card
	if err := uc.DB.Where("user_id = ?", id).Find(&cards).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// DeleteUser -> no cascades are configured, so dependents go first: cards,
// palm templates, auth logs, then the user row, all in one transaction.
func (uc *UserController) DeleteUser(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PalmTemplate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthenticationLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %d deleted with dependents", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "user and related records deleted",
	})
}

// GetUserAuthLogs -> paginated, newest first. The reported total mirrors the
// page length rather than a full count; existing dashboards depend on that.
func (uc *UserController) GetUserAuthLogs(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	var logs []models.AuthenticationLog
	if err := uc.DB.Where("user_id = ?", id).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"total":  len(logs),
		"limit":  limit,
		"offset": offset,
	})
}
