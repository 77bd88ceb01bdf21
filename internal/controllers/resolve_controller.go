package controllers

import (
	"net/http"
	"net/url"

	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/gin-gonic/gin"
)

// ResolveController публичный вход коротких ссылок.
type ResolveController struct {
	resolver LinkResolver
	baseURL  *url.URL
}

func NewResolveController(resolver LinkResolver, baseURL *url.URL) *ResolveController {
	return &ResolveController{
		resolver: resolver,
		baseURL:  baseURL,
	}
}

// Redirect обрабатывает GET /s/:shortCode. Защищенная ссылка уводит на
// страницу запроса доступа вместо назначения.
func (r *ResolveController) Redirect(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")

	resolution, err := r.resolver.Resolve(ctx.Request.Context(), shortCode)
	if err != nil {
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	switch resolution.Outcome {
	case services.OutcomeNotFound:
		ctx.String(http.StatusNotFound, "URL not found")
	case services.OutcomeInactive:
		ctx.String(http.StatusForbidden, "URL Inactive")
	case services.OutcomeRequiresVerification:
		origin := requestOrigin(ctx.Request, r.baseURL)
		ctx.Redirect(http.StatusFound, origin+"/request-access/"+shortCode)
	case services.OutcomeRedirect:
		ctx.Redirect(http.StatusFound, resolution.Snapshot.OriginalURL)
	default:
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
	}
}
