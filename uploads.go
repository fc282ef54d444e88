package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/utils"
)

// pathArtifactKind parses the :kind path parameter, answering 400 for
// unknown kinds.
func pathArtifactKind(c *gin.Context) (models.ArtifactKind, bool) {
	kind := models.ArtifactKind(c.Param("kind"))
	if !kind.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artifact kind"})
		return "", false
	}
	return kind, true
}

func listArtifactsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		auditId, ok := pathInt(c, "id")
		if !ok {
			return
		}
		kind, ok := pathArtifactKind(c)
		if !ok {
			return
		}
		attachments, err := models.GetAttachmentsByAuditKind(c.Request.Context(), auditId, kind)
		if err != nil {
			respondFetchError(c, "uploads", "listArtifactsHandler", err)
			return
		}
		c.JSON(http.StatusOK, attachments)
	}
}

func uploadArtifactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		auditId, ok := pathInt(c, "id")
		if !ok {
			return
		}
		kind, ok := pathArtifactKind(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		// Reject before any bytes leave for cloud storage.
		if err := utils.ValidateUpload(mimeType, fileHeader.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			config.LogError(config.GetLogger(), "uploads", "uploadArtifactHandler", "opening multipart file", fileHeader.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		defer file.Close()

		fileName := strings.TrimSpace(fileHeader.Filename)
		attachment, err := models.CreateAttachment(c.Request.Context(), auditId, kind, fileName, mimeType, fileHeader.Size, file)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, attachment)
	}
}

func deleteArtifactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		auditId, ok := pathInt(c, "id")
		if !ok {
			return
		}
		kind, ok := pathArtifactKind(c)
		if !ok {
			return
		}
		fileId, ok := pathInt(c, "fileId")
		if !ok {
			return
		}
		attachment, err := models.DeleteAttachment(c.Request.Context(), auditId, kind, fileId)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, attachment)
	}
}
