package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/models"
)

func listFindingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if raw := c.Query("auditId"); raw != "" {
			auditId, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "auditId must be an integer"})
				return
			}
			findings, err := models.GetFindingsByAudit(ctx, auditId)
			if err != nil {
				respondFetchError(c, "findings", "listFindingsHandler", err)
				return
			}
			c.JSON(http.StatusOK, findings)
			return
		}

		findings, err := models.GetAllFindings(ctx)
		if err != nil {
			respondFetchError(c, "findings", "listFindingsHandler", err)
			return
		}
		c.JSON(http.StatusOK, findings)
	}
}

func getFindingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		finding, err := models.GetFinding(c.Request.Context(), id)
		if err != nil {
			respondFetchError(c, "findings", "getFindingHandler", err)
			return
		}
		c.JSON(http.StatusOK, finding)
	}
}

func createFindingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewFinding
		if !bindJSON(c, &input) {
			return
		}
		finding, err := models.CreateFinding(c.Request.Context(), &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, finding)
	}
}

func updateFindingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var input models.NewFinding
		if !bindJSON(c, &input) {
			return
		}
		finding, err := models.UpdateFinding(c.Request.Context(), id, &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, finding)
	}
}

func deleteFindingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		finding, err := models.DeleteFinding(c.Request.Context(), id)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, finding)
	}
}
