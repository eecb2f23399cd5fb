package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/db"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
)

type createDocumentRequest struct {
	// Wikitext, when present, is parsed into the new document. Without
	// it a blank document with the fixed schema is created.
	Wikitext string `json:"wikitext"`
	Title    string `json:"title"`
}

// createDocument stores a new document, either imported from wikitext
// or seeded empty.
func (service *Service) createDocument(ctx *gin.Context) {
	var req createDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	var doc document.Document
	if req.Wikitext != "" {
		doc = service.serializer.Parse(req.Wikitext)
	} else {
		doc = document.Seed(document.UUIDGenerator{}, document.SystemClock{})
	}
	if req.Title != "" {
		doc.Title = req.Title
	}

	if err := service.store.CreateDocument(ctx, doc); err != nil {
		if errors.Is(err, db.ErrDuplicateID) {
			ctx.JSON(http.StatusConflict, NewErrorResponse(err))
			return
		}
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusCreated, doc)
}
