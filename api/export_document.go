package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
)

type exportDocumentRequest struct {
	Document document.Document `json:"document" binding:"required"`
}

type exportDocumentResponse struct {
	Wikitext string `json:"wikitext"`
}

// exportDocument renders a document back into an infobox invocation.
func (service *Service) exportDocument(ctx *gin.Context) {
	var req exportDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	if req.Document.TemplateName == "" {
		req.Document.TemplateName = document.DefaultTemplateName
	}

	out := service.serializer.Export(req.Document)

	ctx.JSON(http.StatusOK, exportDocumentResponse{Wikitext: out})
}
