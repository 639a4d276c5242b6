// Package handler translates HTTP requests into store, analyzer, report and
// assistant calls.
package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles the route handlers for registration.
type Handlers struct {
	Auth    *AuthHandler
	Journal *JournalHandler
	Report  *ReportHandler
	Export  *ExportHandler
	Chat    *ChatHandler
}

// SetupRoutes registers all routes. sessionAuth guards everything under
// /api; the root, login, signup and logout routes stay public.
func SetupRoutes(r *gin.Engine, h Handlers, sessionAuth gin.HandlerFunc) {
	r.GET("/", h.Auth.Index)
	r.POST("/login", h.Auth.Login)
	r.POST("/signup", h.Auth.Signup)
	r.GET("/logout", h.Auth.Logout)

	api := r.Group("/api", sessionAuth)
	api.POST("/journal/create", h.Journal.Create)
	api.PUT("/journal/update/:id", h.Journal.Update)
	api.DELETE("/journal/delete/:id", h.Journal.Delete)
	api.GET("/journal/entries", h.Journal.Entries)
	api.GET("/journal/search", h.Journal.Search)

	api.GET("/weekly-report", h.Report.Weekly)
	api.GET("/weekly-comparison", h.Report.Comparison)

	api.GET("/export/json", h.Export.JSON)
	api.GET("/export/pdf", h.Export.Text)

	api.POST("/chat/reflect", h.Chat.Reflect)

	api.POST("/draft/save", h.Chat.SaveDraft)
	api.GET("/draft/load", h.Chat.LoadDraft)
	api.DELETE("/draft/clear", h.Chat.ClearDraft)
}
