package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/models/reports"
)

func dashboardStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := reports.GetDashboardStats(c.Request.Context())
		if err != nil {
			respondFetchError(c, "dashboard", "dashboardStatsHandler", err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func dashboardTrendHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		trend, err := reports.GetMonthlyTrend(c.Request.Context())
		if err != nil {
			respondFetchError(c, "dashboard", "dashboardTrendHandler", err)
			return
		}
		c.JSON(http.StatusOK, trend)
	}
}
