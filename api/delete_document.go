package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/db"
)

func (service *Service) deleteDocument(ctx *gin.Context) {
	docID := extractDocumentIDFromCtx(ctx)

	if err := service.store.DeleteDocument(ctx, docID); err != nil {
		if errors.Is(err, db.ErrDocumentNotFound) {
			err := fmt.Errorf("document with id [%s] not found", docID)
			ctx.JSON(http.StatusNotFound, NewErrorResponse(err))
			return
		}

		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	// the draft is orphaned once its document is gone; its loss is not
	// worth failing the whole request over
	if err := service.drafts.DeleteDraft(ctx, docID); err != nil {
		log.Warn().Err(err).Str("document_id", docID).Msg("failed to delete orphaned draft")
	}

	ctx.Status(http.StatusNoContent)
}
