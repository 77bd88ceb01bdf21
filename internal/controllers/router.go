package controllers

import (
	"github.com/fsdevblog/gatelink/internal/config"
	"github.com/fsdevblog/gatelink/internal/controllers/middlewares"
	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterParams struct {
	LinkService   LinkManager
	Resolver      LinkResolver
	AccessService AccessManager
	Mailer        services.Mailer
	AppConf       *config.Config
	Logger        *logrus.Logger
}

func SetupRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(p.Logger))

	resolveController := NewResolveController(p.Resolver, p.AppConf.BaseURL)
	linksController := NewLinksController(p.LinkService, p.AppConf.BaseURL)
	accessController := NewAccessController(p.AccessService, p.Mailer, p.AppConf.BaseURL, p.Logger)

	r.GET("/s/:shortCode", resolveController.Redirect)

	api := r.Group("/api")
	api.POST("/request-access/:shortCode", accessController.RequestAccess)
	api.GET("/verify-access/:token", accessController.VerifyAccess)

	authorized := api.Group("")
	authorized.Use(middlewares.SessionMiddleware([]byte(p.AppConf.SessionSecret)))
	authorized.POST("/shorten", linksController.CreateShortURL)
	authorized.GET("/urls", linksController.ListURLs)
	authorized.DELETE("/urls/:id", linksController.DeleteURL)

	return r
}
