package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openseva/grievance/internal/auth"
)

// SetupServiceRoutes configures the portal routes (health routes are added
// by the server builder). metricsHandler and uploadsDir are optional.
func SetupServiceRoutes(
	router *gin.Engine,
	handler *Handler,
	jwtMgr *auth.JWTManager,
	metricsHandler http.Handler,
	uploadsDir string,
) {
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}

	v1 := router.Group("/api/v1")

	// Public endpoints: account management, submission, and the stateless
	// analysis helpers the portal frontend calls while a draft is typed.
	v1.POST("/auth/register", handler.Register)
	v1.POST("/auth/login", handler.Login)
	v1.POST("/complaints", handler.SubmitComplaint)
	v1.POST("/complaints/analyze", handler.Analyze)
	v1.POST("/complaints/check-duplicate", handler.CheckDuplicate)

	// Authenticated endpoints. Listing is role-aware: citizens see their
	// own complaints, admins see everything.
	authed := v1.Group("")
	authed.Use(auth.Middleware(jwtMgr))
	authed.GET("/complaints", handler.ListComplaints)
	authed.GET("/complaints/:id", handler.GetComplaint)

	// Admin endpoints.
	admin := authed.Group("")
	admin.Use(auth.RequireAdmin())
	admin.PATCH("/complaints/:id/status", handler.UpdateStatus)
	admin.GET("/analytics", handler.Analytics)
}
