package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/models"
)

func getSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := models.GetAppSettings(c.Request.Context())
		if err != nil {
			respondFetchError(c, "settings", "getSettingsHandler", err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func updateSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewAppSettings
		if !bindJSON(c, &input) {
			return
		}
		settings, err := models.UpdateAppSettings(c.Request.Context(), &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

type uploadLogoRequest struct {
	Image string `json:"image" binding:"required"`
}

func uploadLogoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req uploadLogoRequest
		if !bindJSON(c, &req) {
			return
		}
		settings, err := models.UploadAppLogo(c.Request.Context(), req.Image)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
