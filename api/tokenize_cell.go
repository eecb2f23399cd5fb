package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/inline"
)

type tokenizeCellRequest struct {
	Text *string `json:"text" binding:"required"`
}

type tokenizeCellResponse struct {
	Tokens []inline.Token `json:"tokens"`
}

// tokenizeCell breaks one cell's worth of rich text into inline tokens
// for rendering. The token stream always covers the whole input; empty
// input yields a single empty text token.
func (service *Service) tokenizeCell(ctx *gin.Context) {
	var req tokenizeCellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, tokenizeCellResponse{Tokens: inline.Tokenize(*req.Text)})
}
