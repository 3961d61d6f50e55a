// Package router wires handlers and middleware onto the gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/di"
	"github.com/laxautomacoes/crmLAX-sub001/internal/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/config"
	pkgmiddleware "github.com/laxautomacoes/crmLAX-sub001/pkg/middleware"
)

// Setup configures all routes on a new gin engine
func Setup(cfg *config.Config, c *di.Container) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	auditLogger := pkgmiddleware.NewAuditLogger(pkgmiddleware.DefaultAuditConfig(c.DB.Pool()))
	engine.Use(pkgmiddleware.AuditMiddleware(auditLogger))

	// Probes sit outside tenant resolution: they answer on any host.
	engine.GET("/health", c.HealthHandler.Live)
	engine.GET("/health/ready", c.HealthHandler.Ready)

	api := engine.Group("/api/v1")

	// Cron endpoints authenticate with their own bearer secret.
	api.GET("/cron/reminders", c.CronHandler.Reminders)

	jwtConfig := &pkgmiddleware.JWTConfig{Secret: cfg.JWT.Secret}

	// Platform-level tenant administration, not host-scoped. Owner tokens
	// only: this surface creates and deactivates whole agencies.
	tenants := api.Group("/tenants")
	tenants.Use(pkgmiddleware.JWTMiddleware(jwtConfig), pkgmiddleware.RequireRole("owner"))
	{
		tenants.POST("", c.TenantHandler.Create)
		tenants.GET("", c.TenantHandler.List)
		tenants.GET("/:id", c.TenantHandler.GetByID)
		tenants.GET("/slug/:slug", c.TenantHandler.GetBySlug)
		tenants.PUT("/:id", c.TenantHandler.Update)
		tenants.DELETE("/:id", c.TenantHandler.Delete)
	}

	// Everything below is scoped to the tenant resolved from the host.
	scoped := api.Group("")
	scoped.Use(middleware.TenantResolver(c.ResolverService))

	// Public surface: storefront, invitation acceptance, gateway webhook.
	scoped.GET("/storefront", c.StorefrontHandler.Show)
	scoped.GET("/store/assets", c.StorefrontHandler.Show)
	scoped.GET("/store/assets/:id", c.StorefrontHandler.ShowAsset)
	scoped.POST("/invitations/accept", c.InvitationHandler.Accept)

	webhook := scoped.Group("/whatsapp")
	webhook.Use(middleware.RateLimiter(webhookRateLimit(cfg, c)))
	webhook.POST("/webhook", c.WhatsAppHandler.Webhook)

	// Authenticated surface. The token's tenant claim must match the
	// tenant resolved from the host.
	auth := scoped.Group("")
	auth.Use(pkgmiddleware.JWTMiddleware(jwtConfig), middleware.RequireTenantMatch())

	leads := auth.Group("/leads")
	{
		leads.POST("", c.LeadHandler.Create)
		leads.GET("", c.LeadHandler.List)
		leads.GET("/:id", c.LeadHandler.GetByID)
		leads.PUT("/:id", c.LeadHandler.Update)
		leads.DELETE("/:id", c.LeadHandler.Delete)
		leads.POST("/:id/stage", c.LeadHandler.MoveStage)
		leads.POST("/:id/assign", c.LeadHandler.Assign)
		leads.POST("/:id/score", c.LeadHandler.Rescore)
		leads.GET("/:id/messages", c.WhatsAppHandler.History)
		leads.POST("/:id/messages", c.WhatsAppHandler.Send)
	}

	agenda := auth.Group("/agenda")
	{
		agenda.POST("", c.AgendaHandler.Create)
		agenda.GET("", c.AgendaHandler.List)
		agenda.GET("/feed.ics", c.AgendaHandler.Feed)
		agenda.GET("/:id", c.AgendaHandler.GetByID)
		agenda.PUT("/:id", c.AgendaHandler.Update)
		agenda.DELETE("/:id", c.AgendaHandler.Delete)
	}

	assets := auth.Group("/assets")
	{
		assets.POST("", c.AssetHandler.Create)
		assets.GET("", c.AssetHandler.List)
		assets.GET("/:id", c.AssetHandler.GetByID)
		assets.PUT("/:id", c.AssetHandler.Update)
		assets.DELETE("/:id", c.AssetHandler.Delete)
	}

	// Team management is owner-only.
	invitations := auth.Group("/invitations")
	invitations.Use(pkgmiddleware.RequireRole("owner"))
	{
		invitations.POST("", c.InvitationHandler.Create)
		invitations.GET("", c.InvitationHandler.ListPending)
		invitations.DELETE("/:id", c.InvitationHandler.Revoke)
	}

	notifications := auth.Group("/notifications")
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.POST("/:id/read", c.NotificationHandler.MarkRead)
	}

	return engine
}

// webhookRateLimit shares the bucket across instances when Redis is up
func webhookRateLimit(cfg *config.Config, c *di.Container) middleware.RateLimitConfig {
	rlConfig := middleware.DefaultRateLimitConfig()
	if c.Cache != nil {
		rlConfig.UseRedis = true
		rlConfig.RedisClient = c.Cache
	}
	return rlConfig
}
