package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/models"
)

func listAuditsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		audits, err := models.GetAllAudits(c.Request.Context())
		if err != nil {
			respondFetchError(c, "audits", "listAuditsHandler", err)
			return
		}
		c.JSON(http.StatusOK, audits)
	}
}

func listPlanningAuditsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		audits, err := models.GetPlanningAudits(c.Request.Context())
		if err != nil {
			respondFetchError(c, "audits", "listPlanningAuditsHandler", err)
			return
		}
		c.JSON(http.StatusOK, audits)
	}
}

func listExecutionAuditsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		audits, err := models.GetExecutionAudits(c.Request.Context())
		if err != nil {
			respondFetchError(c, "audits", "listExecutionAuditsHandler", err)
			return
		}
		c.JSON(http.StatusOK, audits)
	}
}

func getAuditHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		audit, err := models.GetAudit(c.Request.Context(), id)
		if err != nil {
			respondFetchError(c, "audits", "getAuditHandler", err)
			return
		}
		c.JSON(http.StatusOK, audit)
	}
}

func createAuditHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewAudit
		if !bindJSON(c, &input) {
			return
		}
		audit, err := models.CreateAudit(c.Request.Context(), &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, audit)
	}
}

func updateAuditHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var input models.NewAudit
		if !bindJSON(c, &input) {
			return
		}
		audit, err := models.UpdateAudit(c.Request.Context(), id, &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, audit)
	}
}

func deleteAuditHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		audit, err := models.DeleteAudit(c.Request.Context(), id)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, audit)
	}
}

type updateTeamRequest struct {
	Team []models.AuditTeamMember `json:"team" binding:"required"`
}

func updateAuditTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var req updateTeamRequest
		if !bindJSON(c, &req) {
			return
		}
		audit, err := models.UpdateAuditTeam(c.Request.Context(), id, req.Team)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, audit)
	}
}

type updateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

func updateAuditProgressHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var req updateProgressRequest
		if !bindJSON(c, &req) {
			return
		}
		audit, err := models.UpdateAuditProgress(c.Request.Context(), id, *req.Progress)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, audit)
	}
}
