package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/tmpstore"
)

type saveDraftRequest struct {
	Document document.Document `json:"document" binding:"required"`
}

// saveDraft stores an uncommitted working copy of a document in Redis.
// The draft lives independently of the persisted document and expires
// on its own after the configured TTL.
func (service *Service) saveDraft(ctx *gin.Context) {
	docID := extractDocumentIDFromCtx(ctx)

	var req saveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	draft := tmpstore.Draft{
		Document: req.Document,
		SavedAt:  time.Now().UTC(),
	}

	if err := service.drafts.SaveDraft(ctx, docID, draft, service.config.DraftTTL); err != nil {
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, draft)
}

func (service *Service) getDraft(ctx *gin.Context) {
	docID := extractDocumentIDFromCtx(ctx)

	draft, err := service.drafts.GetDraft(ctx, docID)
	if err != nil {
		if errors.Is(err, tmpstore.ErrDraftNotFound) {
			err := fmt.Errorf("draft for document [%s] not found", docID)
			ctx.JSON(http.StatusNotFound, NewErrorResponse(err))
			return
		}

		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, draft)
}

func (service *Service) deleteDraft(ctx *gin.Context) {
	docID := extractDocumentIDFromCtx(ctx)

	if err := service.drafts.DeleteDraft(ctx, docID); err != nil {
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
