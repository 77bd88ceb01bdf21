package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestAccessRequest тело POST /api/request-access/:shortCode.
type requestAccessRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AccessController запрос и подтверждение доступа к защищенным ссылкам.
type AccessController struct {
	accessService AccessManager
	mailer        services.Mailer
	baseURL       *url.URL
	logger        *logrus.Entry
}

func NewAccessController(
	accessService AccessManager,
	mailer services.Mailer,
	baseURL *url.URL,
	logger *logrus.Logger,
) *AccessController {
	return &AccessController{
		accessService: accessService,
		mailer:        mailer,
		baseURL:       baseURL,
		logger:        logger.WithField("module", "controller/access"),
	}
}

// RequestAccess выдает визитеру токен подтверждения и шлет письмо.
// Сообщения об отказе намеренно одинаково скупые: наружу не утекает,
// какие адреса есть в белом списке.
func (a *AccessController) RequestAccess(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")

	var req requestAccessRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address"})
		return
	}

	origin := requestOrigin(ctx.Request, a.baseURL)
	err := a.accessService.RequestAccess(ctx.Request.Context(), shortCode, req.Email, origin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		case errors.Is(err, services.ErrNotProtected):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "This URL is not protected"})
		case errors.Is(err, services.ErrForbidden):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process access request"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification email sent successfully",
	})
}

// VerifyAccess гасит токен из письма. Любой отказ уводит на страницу
// access-denied без подробностей; успех редиректит на назначение и в
// фоне уведомляет владельца, если тот просил.
func (a *AccessController) VerifyAccess(ctx *gin.Context) {
	tokenValue := ctx.Param("token")
	origin := requestOrigin(ctx.Request, a.baseURL)

	result, err := a.accessService.VerifyAccess(ctx.Request.Context(), tokenValue)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidToken) &&
			!errors.Is(err, services.ErrTokenExpired) &&
			!errors.Is(err, services.ErrForbidden) {
			ctx.String(http.StatusInternalServerError, ErrInternal.Error())
			return
		}
		ctx.Redirect(http.StatusFound, origin+"/access-denied")
		return
	}

	if result.NotifyOnAccess {
		// Контекст снимается до запуска горутины: gin переиспользует
		// *gin.Context, трогать его после возврата хендлера нельзя.
		sendCtx := context.WithoutCancel(ctx.Request.Context())
		go func(sendCtx context.Context, ownerEmail, originalURL, visitorEmail string) {
			if sendErr := a.mailer.SendAccessNotification(sendCtx, ownerEmail, originalURL, visitorEmail); sendErr != nil {
				a.logger.WithError(sendErr).Warnf("failed to send access notification to %s", ownerEmail)
			}
		}(sendCtx, result.OwnerEmail, result.OriginalURL, result.VisitorEmail)
	}

	ctx.Redirect(http.StatusFound, result.OriginalURL)
}
