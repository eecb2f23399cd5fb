package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/db"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
)

// updateDocument replaces the stored document with the submitted one.
// The body's id must match the url; a missing id is filled in from the
// url for convenience.
func (service *Service) updateDocument(ctx *gin.Context) {
	docID := extractDocumentIDFromCtx(ctx)

	var doc document.Document
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	if doc.ID == "" {
		doc.ID = docID
	}
	if doc.ID != docID {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrDocumentIDChanged))
		return
	}
	if doc.TemplateName == "" {
		doc.TemplateName = document.DefaultTemplateName
	}
	if doc.LastEdited.IsZero() {
		doc.LastEdited = time.Now().UTC()
	}

	if err := service.store.UpdateDocument(ctx, doc); err != nil {
		if errors.Is(err, db.ErrDocumentNotFound) {
			err := fmt.Errorf("document with id [%s] not found", docID)
			ctx.JSON(http.StatusNotFound, NewErrorResponse(err))
			return
		}

		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, doc)
}
