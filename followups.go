package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/models"
)

func listFollowUpsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if raw := c.Query("findingId"); raw != "" {
			findingId, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "findingId must be an integer"})
				return
			}
			followUps, err := models.GetFollowUpsByFinding(ctx, findingId)
			if err != nil {
				respondFetchError(c, "followups", "listFollowUpsHandler", err)
				return
			}
			c.JSON(http.StatusOK, followUps)
			return
		}

		if raw := c.Query("auditId"); raw != "" {
			auditId, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "auditId must be an integer"})
				return
			}
			followUps, err := models.GetFollowUpsByAudit(ctx, auditId)
			if err != nil {
				respondFetchError(c, "followups", "listFollowUpsHandler", err)
				return
			}
			c.JSON(http.StatusOK, followUps)
			return
		}

		followUps, err := models.GetAllFollowUps(ctx)
		if err != nil {
			respondFetchError(c, "followups", "listFollowUpsHandler", err)
			return
		}
		c.JSON(http.StatusOK, followUps)
	}
}

func getFollowUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		followUp, err := models.GetFollowUp(c.Request.Context(), id)
		if err != nil {
			respondFetchError(c, "followups", "getFollowUpHandler", err)
			return
		}
		c.JSON(http.StatusOK, followUp)
	}
}

func createFollowUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewFollowUp
		if !bindJSON(c, &input) {
			return
		}
		followUp, err := models.CreateFollowUp(c.Request.Context(), &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, followUp)
	}
}

func updateFollowUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var input models.NewFollowUp
		if !bindJSON(c, &input) {
			return
		}
		followUp, err := models.UpdateFollowUp(c.Request.Context(), id, &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, followUp)
	}
}

type completeFollowUpRequest struct {
	CompletionProof string `json:"completion_proof"`
}

func completeFollowUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var req completeFollowUpRequest
		if !bindJSON(c, &req) {
			return
		}
		followUp, err := models.CompleteFollowUp(c.Request.Context(), id, req.CompletionProof)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, followUp)
	}
}

func deleteFollowUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		followUp, err := models.DeleteFollowUp(c.Request.Context(), id)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, followUp)
	}
}
