package di

import (
	"github.com/laxautomacoes/crmLAX-sub001/internal/gateway"
	"github.com/laxautomacoes/crmLAX-sub001/internal/handler"
	"github.com/laxautomacoes/crmLAX-sub001/internal/repository"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/config"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/database"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/redis"
)

// Container holds all dependencies for the CRM service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Cache *redis.Client

	// Repositories
	TenantRepo       repository.TenantRepository
	ProfileRepo      repository.ProfileRepository
	LeadRepo         repository.LeadRepository
	EventRepo        repository.EventRepository
	InvitationRepo   repository.InvitationRepository
	AssetRepo        repository.AssetRepository
	NotificationRepo repository.NotificationRepository
	MessageRepo      repository.MessageRepository

	// Gateway clients
	WhatsAppClient gateway.WhatsAppSender

	// Services
	TenantService       service.TenantService
	ResolverService     service.ResolverService
	ScoringService      service.ScoringService
	NotificationService service.NotificationService
	LeadService         service.LeadService
	AgendaService       service.AgendaService
	ReminderService     service.ReminderService
	InvitationService   service.InvitationService
	AssetService        service.AssetService
	WhatsAppService     service.WhatsAppService

	// Handlers
	HealthHandler       *handler.HealthHandler
	TenantHandler       *handler.TenantHandler
	LeadHandler         *handler.LeadHandler
	AgendaHandler       *handler.AgendaHandler
	CronHandler         *handler.CronHandler
	InvitationHandler   *handler.InvitationHandler
	AssetHandler        *handler.AssetHandler
	StorefrontHandler   *handler.StorefrontHandler
	WhatsAppHandler     *handler.WhatsAppHandler
	NotificationHandler *handler.NotificationHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  *redis.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Cache: cfg.Cache,
	}
	conf := cfg.Config

	// Initialize repositories
	c.TenantRepo = repository.NewPostgresTenantRepository(c.DB.Pool())
	c.ProfileRepo = repository.NewPostgresProfileRepository(c.DB.Pool())
	c.LeadRepo = repository.NewPostgresLeadRepository(c.DB.Pool())
	c.EventRepo = repository.NewPostgresEventRepository(c.DB.Pool())
	c.InvitationRepo = repository.NewPostgresInvitationRepository(c.DB.Pool())
	c.AssetRepo = repository.NewPostgresAssetRepository(c.DB.Pool())
	c.NotificationRepo = repository.NewPostgresNotificationRepository(c.DB.Pool())
	c.MessageRepo = repository.NewPostgresMessageRepository(c.DB.Pool())

	// Gateway clients
	c.WhatsAppClient = gateway.NewWhatsAppClient(&conf.WhatsApp)

	// Initialize services
	c.TenantService = service.NewTenantService(c.TenantRepo)
	c.ResolverService = service.NewResolverService(c.TenantRepo, c.Cache, conf.Tenant.RootDomain, conf.Tenant.CacheTTL)
	c.ScoringService = service.NewScoringService(conf.Scoring)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.ProfileRepo, c.WhatsAppClient, conf.WhatsApp.RelayNotifications)
	c.LeadService = service.NewLeadService(c.LeadRepo, c.ProfileRepo, c.ScoringService, c.NotificationService)
	c.AgendaService = service.NewAgendaService(c.EventRepo)
	c.ReminderService = service.NewReminderService(c.EventRepo, c.NotificationService, conf.Cron.ReminderWindow)
	c.InvitationService = service.NewInvitationService(c.InvitationRepo, c.ProfileRepo, c.NotificationService, conf.JWT)
	c.AssetService = service.NewAssetService(c.AssetRepo)
	c.WhatsAppService = service.NewWhatsAppService(c.MessageRepo, c.LeadRepo, c.ScoringService, c.WhatsAppClient)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Cache)
	c.TenantHandler = handler.NewTenantHandler(c.TenantService, c.ResolverService, conf.Tenant.RootDomain)
	c.LeadHandler = handler.NewLeadHandler(c.LeadService)
	c.AgendaHandler = handler.NewAgendaHandler(c.AgendaService)
	c.CronHandler = handler.NewCronHandler(c.ReminderService, conf.Cron.Secret)
	c.InvitationHandler = handler.NewInvitationHandler(c.InvitationService)
	c.AssetHandler = handler.NewAssetHandler(c.AssetService)
	c.StorefrontHandler = handler.NewStorefrontHandler(c.AssetService)
	c.WhatsAppHandler = handler.NewWhatsAppHandler(c.WhatsAppService, conf.WhatsApp.WebhookToken)
	c.NotificationHandler = handler.NewNotificationHandler(c.NotificationService)

	return c
}
