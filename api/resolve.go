package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/gateway"
)

type resolveLinkRequest struct {
	Target   string `form:"target" binding:"required"`
	Fragment string `form:"fragment"`
	Lang     string `form:"lang"`
}

type resolveLinkResponse struct {
	Resolved bool   `json:"resolved"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url"`
}

// resolveLink looks a wiki link target up against the live wiki. When
// the page is missing or resolution is unavailable the response still
// carries a naive URL so the client always has something to render.
func (service *Service) resolveLink(ctx *gin.Context) {
	var req resolveLinkRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	link, err := service.links.Resolve(ctx, req.Target, req.Fragment, req.Lang, service.config.DefaultLanguage)
	if err != nil || link == nil {
		ctx.JSON(http.StatusOK, resolveLinkResponse{
			Resolved: false,
			URL:      gateway.BuildNaiveURL(req.Target, req.Fragment, req.Lang, service.config.DefaultLanguage),
		})
		return
	}

	ctx.JSON(http.StatusOK, resolveLinkResponse{
		Resolved: true,
		Title:    link.Title,
		URL:      link.URL,
	})
}

type resolveIconRequest struct {
	Code  string `form:"code" binding:"required"`
	Width int    `form:"width,default=23" binding:"min=1,max=300"`
	Host  string `form:"host"`
}

type resolveIconResponse struct {
	Found bool   `json:"found"`
	URL   string `json:"url,omitempty"`
}

// resolveIcon resolves a flag template code to an image URL. An
// unknown code is not an error; the client falls back to plain text.
func (service *Service) resolveIcon(ctx *gin.Context) {
	var req resolveIconRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	iconURL, err := service.icons.ResolveFlagIcon(ctx, "flagicon", req.Code, req.Width, req.Host)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, resolveIconResponse{
		Found: iconURL != "",
		URL:   iconURL,
	})
}
