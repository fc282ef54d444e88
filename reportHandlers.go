package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/models/reports"
	"github.com/simailhq/simail_backend/utils"
)

func listReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := reports.GetReportRows(c.Request.Context(), c.Query("type"), c.Query("year"))
		if err != nil {
			respondFetchError(c, "reports", "listReportsHandler", err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func getReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		report, err := models.GetReport(c.Request.Context(), id)
		if err != nil {
			respondFetchError(c, "reports", "getReportHandler", err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// reportCreator resolves the display name recorded on generated
// snapshots from the session user.
func reportCreator(c *gin.Context) string {
	ctx := c.Request.Context()
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return ""
	}
	user, err := models.GetUserByUsername(ctx, username)
	if err != nil {
		return username
	}
	return user.Name
}

func generateGeneralReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := models.GenerateGeneralReport(c.Request.Context(), reportCreator(c))
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, report)
	}
}

func generateAuditReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		report, err := models.GenerateAuditReport(c.Request.Context(), id, reportCreator(c))
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, report)
	}
}

func exportReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		ctx, span := tracer.Start(c.Request.Context(), "export_report")
		defer span.End()

		report, err := models.GetReport(ctx, id)
		if err != nil {
			respondFetchError(c, "reports", "exportReportHandler", err)
			return
		}

		workbook, err := reports.BuildReportWorkbook(ctx, report)
		if err != nil {
			respondFetchError(c, "reports", "exportReportHandler", err)
			return
		}

		filename := reports.SanitizeReportFilename(report.Title, time.Now())
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

		if err := workbook.Write(c.Writer); err != nil {
			// headers are already out, so just record the failure
			config.LogError(config.GetLogger(), "reports", "exportReportHandler", "streaming workbook", map[string]any{"report_id": id}, err)
		}
	}
}

type updateReportStatusRequest struct {
	Status models.ReportStatus `json:"status" binding:"required"`
}

func updateReportStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var req updateReportStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		report, err := models.UpdateReportStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func deleteReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		report, err := models.DeleteReport(c.Request.Context(), id)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func reportStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := reports.GetReportStats(c.Request.Context())
		if err != nil {
			respondFetchError(c, "reports", "reportStatsHandler", err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
