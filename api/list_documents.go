package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type listDocumentsRequest struct {
	Limit  int32 `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int32 `form:"offset,default=0" binding:"min=0"`
}

func (service *Service) listDocuments(ctx *gin.Context) {
	var req listDocumentsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	summaries, err := service.store.ListDocuments(ctx, req.Limit, req.Offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}
