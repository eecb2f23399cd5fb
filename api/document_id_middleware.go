package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxDocumentIDKey = "document_id"

// This middleware checks the mandatory document ID parameter in the URL.
//
// I chose to use middleware instead of Gin's URI binding because it is
// harder to produce a human-readable error message with the binder than
// with manual validation. It also makes handlers cleaner.
func (service *Service) documentIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := ctx.Param("id")
		if _, err := uuid.Parse(raw); err != nil {
			err := fmt.Errorf("%w: %q", ErrInvalidDocumentID, raw)
			ctx.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(err))
			return
		}

		ctx.Set(ctxDocumentIDKey, raw)
		ctx.Next()
	}
}

// Helper function to get the document ID after middleware check.
func extractDocumentIDFromCtx(ctx *gin.Context) string {
	return ctx.MustGet(ctxDocumentIDKey).(string)
}
