package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/shared-experiences-api/docs"
	v1 "github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1"
	"github.com/vietanh2810/shared-experiences-api/internal/api/middleware"
	"github.com/vietanh2810/shared-experiences-api/internal/config"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

const basePath = "/api"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	auth  *middleware.Authenticator
	cache *middleware.ReportCache
	redis *redis.Client
	audit middleware.AuditQueue
}

type handlers struct {
	auth       *v1.AuthHandler
	providers  *v1.ProviderHandler
	guests     *v1.GuestHandler
	services   *v1.ServiceHandler
	experience *v1.SharedExperienceHandler
	discounts  *v1.DiscountHandler
	billings   *v1.BillingHandler
	reports    *v1.ReportHandler
	logs       *v1.LogHandler
}

// NewServer wires services over repos. rdb and audits may be nil, which turns
// off caching, rate limiting and audit recording.
func NewServer(conf *config.AppConfig, repos Repositories, rdb *redis.Client, audits middleware.AuditQueue) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		auth:   middleware.NewAuthenticator(conf.Auth.JWTSigningKey, conf.Auth.JWTIssuer),
		cache:  middleware.NewReportCache(rdb, conf.Cache),
		redis:  rdb,
		audit:  audits,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(repos))

	return s
}

func (s *Server) initHandlers(repos Repositories) handlers {
	authSvc := service.NewAuthService(repos.Users, service.AuthConfig{
		BcryptCost:     s.Config.Auth.BcryptCost,
		PasswordPolicy: s.Config.Auth.PasswordPolicy,
		AllowedRoles:   s.Config.Auth.AllowedRoles(),
	})

	return handlers{
		auth:       v1.NewAuthHandler(s.Config.Auth, authSvc),
		providers:  v1.NewProviderHandler(service.NewProviderService(repos.Providers)),
		guests:     v1.NewGuestHandler(service.NewGuestService(repos.Guests)),
		services:   v1.NewServiceHandler(service.NewOfferingService(repos.Services)),
		experience: v1.NewSharedExperienceHandler(service.NewSharedExperienceService(repos.Experiences)),
		discounts:  v1.NewDiscountHandler(service.NewDiscountService(repos.Discounts)),
		billings:   v1.NewBillingHandler(service.NewBillingService(repos.Billings, repos.Services, repos.Discounts)),
		reports:    v1.NewReportHandler(service.NewReportService(repos.Snapshots)),
		logs:       v1.NewLogHandler(service.NewLogService(repos.Audit)),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(s.auth.Identify())
	s.Router.Use(middleware.Audit(s.audit))
	s.Router.Use(s.cache.InvalidateReports())
}

func (s *Server) MountHandlers(h handlers) {
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	verify := s.auth.VerifyJWT()

	auth := s.Router.Group(basePath+"/auth", middleware.RateLimit(s.Config.RateLimit, s.redis))
	{
		auth.POST("/register", h.auth.HandleRegister)
		auth.POST("/login", h.auth.HandleLogin)
	}
	s.Router.GET(basePath+"/auth/me", verify, h.auth.HandleGetCurrentUser)

	providers := s.Router.Group(basePath+"/providers", verify, staff)
	{
		providers.GET("", h.providers.HandleGetProviders)
		providers.GET("/:id", h.providers.HandleGetProvider)
		providers.GET("/:id/services", h.providers.HandleGetProviderServices)
		providers.POST("", h.providers.HandleCreateProvider)
		providers.PUT("/:id", h.providers.HandleUpdateProvider)
		providers.DELETE("/:id", h.providers.HandleDeleteProvider)
	}

	guests := s.Router.Group(basePath+"/guests", verify, staff)
	{
		guests.GET("", h.guests.HandleGetGuests)
		guests.GET("/:id", h.guests.HandleGetGuest)
		guests.POST("", h.guests.HandleCreateGuest)
		guests.PUT("/:id", h.guests.HandleUpdateGuest)
		guests.DELETE("/:id", h.guests.HandleDeleteGuest)
	}

	services := s.Router.Group(basePath + "/services")
	{
		services.GET("", h.services.HandleGetServices)
		services.GET("/:id", h.services.HandleGetService)
		services.POST("", verify, staff, h.services.HandleCreateService)
		services.PUT("/:id", verify, staff, h.services.HandleUpdateService)
		services.DELETE("/:id", verify, staff, h.services.HandleDeleteService)
		services.POST("/:id/guests/:guestId", verify, staff, h.services.HandleAddServiceGuest)
	}

	discounts := s.Router.Group(basePath+"/discounts", verify)
	{
		discounts.GET("", h.discounts.HandleGetDiscounts)
		discounts.GET("/:id", h.discounts.HandleGetDiscount)
		discounts.POST("", staff, h.discounts.HandleCreateDiscount)
		discounts.PUT("/:id", staff, h.discounts.HandleUpdateDiscount)
		discounts.DELETE("/:id", staff, h.discounts.HandleDeleteDiscount)
	}

	billings := s.Router.Group(basePath+"/billings", verify, staff)
	{
		billings.GET("", h.billings.HandleGetBillings)
		billings.GET("/:id", h.billings.HandleGetBilling)
		billings.POST("", h.billings.HandleCreateBilling)
		billings.PUT("/:id", h.billings.HandleUpdateBilling)
		billings.DELETE("/:id", h.billings.HandleDeleteBilling)
	}

	// Cached reports sit behind the auth checks so a hit never skips them.
	cached := s.cache.Serve()
	experiences := s.Router.Group(basePath + "/sharedexperiences")
	{
		experiences.GET("/Table1", verify, staff, cached, h.reports.HandleTable1)
		experiences.GET("/Table2", cached, h.reports.HandleTable2)
		experiences.GET("/Table3", cached, h.reports.HandleTable3)
		experiences.GET("/Table4", verify, staff, cached, h.reports.HandleTable4)
		experiences.GET("/Table5", cached, h.reports.HandleTable5)
		experiences.GET("/Table6", verify, staff, cached, h.reports.HandleTable6)
		experiences.GET("/Table7", verify, staff, cached, h.reports.HandleTable7)
		experiences.GET("/Table8", verify, staff, cached, h.reports.HandleTable8)
		experiences.GET("/Table9", verify, cached, h.reports.HandleTable9)

		experiences.GET("", verify, h.experience.HandleGetSharedExperiences)
		experiences.GET("/:id", verify, h.experience.HandleGetSharedExperience)
		experiences.POST("", verify, staff, h.experience.HandleCreateSharedExperience)
		experiences.PUT("/:id", verify, staff, h.experience.HandleUpdateSharedExperience)
		experiences.DELETE("/:id", verify, staff, h.experience.HandleDeleteSharedExperience)
		experiences.POST("/:id/guests/:guestId", verify, staff, h.experience.HandleAddExperienceGuest)
		experiences.POST("/:id/services/:serviceId", verify, staff, h.experience.HandleAddExperienceService)
	}

	logs := s.Router.Group(basePath+"/logs", verify, middleware.RequireRoles(domain.RoleAdmin))
	{
		logs.GET("/search", h.logs.HandleSearchLogs)
		logs.GET("/operation-types", h.logs.HandleOperationTypes)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Shared Experiences API"
	docs.SwaggerInfo.Description = "Providers, guests, services and shared experiences with billing and reports."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
