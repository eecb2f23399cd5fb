package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/db"
)

func (service *Service) getDocument(ctx *gin.Context) {
	docID := extractDocumentIDFromCtx(ctx)

	doc, err := service.store.GetDocument(ctx, docID)
	if err != nil {
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
