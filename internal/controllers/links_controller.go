package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fsdevblog/gatelink/internal/controllers/middlewares"
	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/gin-gonic/gin"
)

// createLinkRequest тело POST /api/shorten.
type createLinkRequest struct {
	URL              string   `json:"url"              binding:"required"`
	IsProtected      bool     `json:"isProtected"`
	NotifyOnAccess   bool     `json:"notifyOnAccess"`
	AuthorizedEmails []string `json:"authorizedEmails" binding:"omitempty,dive,email"`
}

// linkResponse форма ссылки в ответах API.
type linkResponse struct {
	ID               uint      `json:"id"`
	ShortCode        string    `json:"shortCode"`
	ShortURL         string    `json:"shortUrl"`
	OriginalURL      string    `json:"originalUrl"`
	IsProtected      bool      `json:"isProtected"`
	NotifyOnAccess   bool      `json:"notifyOnAccess"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	AuthorizedEmails []string  `json:"authorizedEmails"`
}

// LinksController операции владельца над своими ссылками.
type LinksController struct {
	linkService LinkManager
	baseURL     *url.URL
}

func NewLinksController(linkService LinkManager, baseURL *url.URL) *LinksController {
	return &LinksController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// CreateShortURL принимает json запрос на сокращение ссылки.
func (l *LinksController) CreateShortURL(ctx *gin.Context) {
	user, ok := middlewares.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createLinkRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	link, createErr := l.linkService.Create(ctx.Request.Context(), services.CreateLinkParams{
		OwnerID:          user.ID,
		OwnerEmail:       user.Email,
		RawURL:           req.URL,
		IsProtected:      req.IsProtected,
		NotifyOnAccess:   req.NotifyOnAccess,
		AuthorizedEmails: req.AuthorizedEmails,
	})
	if createErr != nil {
		if errors.Is(createErr, services.ErrValidation) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": createErr.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create short URL"})
		return
	}

	ctx.JSON(http.StatusCreated, l.presentLink(ctx, link))
}

// ListURLs возвращает ссылки текущего пользователя, новые сверху.
func (l *LinksController) ListURLs(ctx *gin.Context) {
	user, ok := middlewares.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	links, listErr := l.linkService.ListByOwner(ctx.Request.Context(), user.ID)
	if listErr != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch URLs"})
		return
	}

	result := make([]linkResponse, 0, len(links))
	for i := range links {
		result = append(result, l.presentLink(ctx, &links[i]))
	}
	ctx.JSON(http.StatusOK, result)
}

// DeleteURL удаляет ссылку текущего пользователя.
func (l *LinksController) DeleteURL(ctx *gin.Context) {
	user, ok := middlewares.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, parseErr := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if parseErr != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		return
	}

	delErr := l.linkService.Delete(ctx.Request.Context(), uint(id), user.ID)
	if delErr != nil {
		switch {
		case errors.Is(delErr, services.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		case errors.Is(delErr, services.ErrForbidden):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete URL"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "URL deleted successfully"})
}

func (l *LinksController) presentLink(ctx *gin.Context, link *models.ShortLink) linkResponse {
	emails := make([]string, 0, len(link.AuthorizedEmails))
	for _, ae := range link.AuthorizedEmails {
		emails = append(emails, ae.Email)
	}
	return linkResponse{
		ID:               link.ID,
		ShortCode:        link.ShortCode,
		ShortURL:         shortURLFor(ctx.Request, l.baseURL, link.ShortCode),
		OriginalURL:      link.OriginalURL,
		IsProtected:      link.IsProtected,
		NotifyOnAccess:   link.NotifyOnAccess,
		Active:           link.Active,
		CreatedAt:        link.CreatedAt,
		AuthorizedEmails: emails,
	}
}
