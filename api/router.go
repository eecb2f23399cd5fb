package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.Default()

	router.Use(service.corsMiddleware())

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	// stateless conversion between wikitext and the document model
	router.POST(DocumentsParseURL, service.parseDocument)
	router.POST(DocumentsExportURL, service.exportDocument)
	router.POST("/tokenize", service.tokenizeCell)

	// live wiki lookups used by the editor while rendering
	router.GET("/resolve/link", service.resolveLink)
	router.GET("/resolve/icon", service.resolveIcon)

	// persisted documents
	router.POST(DocumentsURL, service.createDocument)
	router.GET(DocumentsURL, service.listDocuments)

	// routes where the document id is checked
	documentGroup := router.Group(DocumentsURL).Use(service.documentIDMiddleware())
	documentGroup.GET("/:id", service.getDocument)
	documentGroup.PUT("/:id", service.updateDocument)
	documentGroup.DELETE("/:id", service.deleteDocument)

	// unsaved working copies, kept in Redis until committed
	documentGroup.PUT("/:id/draft", service.saveDraft)
	documentGroup.GET("/:id/draft", service.getDraft)
	documentGroup.DELETE("/:id/draft", service.deleteDraft)

	server.Handler = router
	service.router = router
}
