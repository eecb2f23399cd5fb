package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type parseDocumentRequest struct {
	Wikitext string `json:"wikitext"`
}

// parseDocument converts raw wikitext into a document without storing
// anything. Parsing never fails, empty input included; only malformed
// JSON is rejected. A page with no recognizable infobox still yields
// a document whose report explains what happened.
func (service *Service) parseDocument(ctx *gin.Context) {
	var req parseDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	doc := service.serializer.Parse(req.Wikitext)

	ctx.JSON(http.StatusOK, doc)
}
