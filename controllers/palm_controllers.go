package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/services"
	"github.com/yeremiapane/palmpay-kiosk/utils"
)

type PalmController struct {
	DB    *gorm.DB
	Cache *services.EnrollmentCache
}

func NewPalmController(db *gorm.DB, cache *services.EnrollmentCache) *PalmController {
	return &PalmController{DB: db, Cache: cache}
}

// GetTemplateByUser -> first template for the user. A user can carry several
// templates (re-enrollments, multiple vendors); this endpoint does not
// disambiguate further.
func (pc *PalmController) GetTemplateByUser(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var template models.PalmTemplate
	if err := pc.DB.Where("user_id = ?", id).First(&template).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no palm template for user"))
		return
	}

	c.JSON(http.StatusOK, template)
}

// VerifyPalm -> returns every active template for the vendor/version tuple.
// The server does no distance computation; the kiosk SDK matches the probe
// against these candidates locally.
func (pc *PalmController) VerifyPalm(c *gin.Context) {
	type reqBody struct {
		SDKVendor      string          `json:"sdkVendor"`
		FeatureVersion string          `json:"featureVersion"`
		PalmFeatures   json.RawMessage `json:"palmFeatures"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.SDKVendor == "" {
		req.SDKVendor = "veinshine"
	}
	if req.FeatureVersion == "" {
		req.FeatureVersion = "1.0"
	}

	var templates []models.PalmTemplate
	if err := pc.DB.Preload("User").
		Where("sdk_vendor = ? AND feature_version = ? AND is_active = ?",
			req.SDKVendor, req.FeatureVersion, true).
		Find(&templates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	candidates := make([]gin.H, 0, len(templates))
	for _, t := range templates {
		candidates = append(candidates, gin.H{
			"id":               t.ID,
			"userId":           t.UserID,
			"sdkVendor":        t.SDKVendor,
			"featureVersion":   t.FeatureVersion,
			"leftPalmFeature":  t.LeftPalmFeature,
			"rightPalmFeature": t.RightPalmFeature,
			"leftVeinFeature":  t.LeftVeinFeature,
			"rightVeinFeature": t.RightVeinFeature,
			"user": gin.H{
				"id":          t.User.ID,
				"displayName": t.User.DisplayName,
				"email":       t.User.Email,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"templateCount": len(candidates),
		"templates":     candidates,
	})
}

// GenerateEnrollmentQR -> parks the captured features under a short-lived
// token; the mobile app polls the companion endpoint with it
func (pc *PalmController) GenerateEnrollmentQR(c *gin.Context) {
	type reqBody struct {
		PalmFeatures json.RawMessage `json:"palmFeatures" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token, entry, err := pc.Cache.Put(req.PalmFeatures)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"enrollmentToken": token,
		"expiresIn":       int(entry.ExpiresAt.Sub(entry.CreatedAt).Seconds()),
	})
}

// GetEnrollment -> resolves a token. 404 for a token we never had (or have
// already dropped), 410 for the first read past expiry.
func (pc *PalmController) GetEnrollment(c *gin.Context) {
	token := c.Param("token")

	entry, ok, expired := pc.Cache.Get(token)
	if expired {
		utils.RespondError(c, http.StatusGone, errors.New("enrollment token expired"))
		return
	}
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("enrollment token not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"palmFeatures": entry.PalmFeatures,
		"createdAt":    entry.CreatedAt,
	})
}
