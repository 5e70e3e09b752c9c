package api

import (
	"context"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/oaktheatre/boxoffice/docs"
	v1 "github.com/oaktheatre/boxoffice/internal/api/handler/v1"
	"github.com/oaktheatre/boxoffice/internal/api/middleware"
	"github.com/oaktheatre/boxoffice/internal/config"
	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/mail"
	"github.com/oaktheatre/boxoffice/internal/repository"
	"github.com/oaktheatre/boxoffice/internal/repository/dao"
	"github.com/oaktheatre/boxoffice/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	reservations *service.ReservationService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	s.reservations = s.initReservationService(db)

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	showHandler := s.initShowHandler(db)
	performanceHandler := s.initPerformanceHandler(db)
	reservationHandler := v1.NewReservationHandler(s.reservations)
	fohHandler := s.initFOHHandler(db)
	ticketHandler := s.initTicketHandler(db)
	venueHandler := s.initVenueHandler(db)

	s.MountHandlers(userSvc, handlers{
		auth:        authHandler,
		user:        userHandler,
		show:        showHandler,
		performance: performanceHandler,
		reservation: reservationHandler,
		foh:         fohHandler,
		ticket:      ticketHandler,
		venue:       venueHandler,
	})

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initShowHandler(db *gorm.DB) *v1.ShowHandler {
	showDAO := dao.NewShowDAO(db)
	repo := repository.NewShowRepository(showDAO)
	svc := service.NewShowService(repo)
	handler := v1.NewShowHandler(svc)

	return handler
}

func (s *Server) initPerformanceHandler(db *gorm.DB) *v1.PerformanceHandler {
	performanceRepo := repository.NewPerformanceRepository(dao.NewPerformanceDAO(db))
	showRepo := repository.NewShowRepository(dao.NewShowDAO(db))
	svc := service.NewPerformanceService(performanceRepo, showRepo)

	pricingSvc := service.NewPricingService(repository.NewTicketRepository(dao.NewTicketDAO(db)))
	capacitySvc := service.NewCapacityService(
		performanceRepo,
		repository.NewReservationRepository(dao.NewReservationDAO(db)),
	)

	handler := v1.NewPerformanceHandler(svc, pricingSvc, capacitySvc)

	return handler
}

func (s *Server) initReservationService(db *gorm.DB) *service.ReservationService {
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))
	performanceRepo := repository.NewPerformanceRepository(dao.NewPerformanceDAO(db))
	pricingSvc := service.NewPricingService(repository.NewTicketRepository(dao.NewTicketDAO(db)))
	mailer := mail.NewMailer(s.Config.SMTP, s.Config.API.BaseURL)

	return service.NewReservationService(
		reservationRepo,
		performanceRepo,
		pricingSvc,
		mailer,
		s.Config.API.CollectionDeadlineHours,
	)
}

func (s *Server) initFOHHandler(db *gorm.DB) *v1.FOHHandler {
	performanceRepo := repository.NewPerformanceRepository(dao.NewPerformanceDAO(db))
	showRepo := repository.NewShowRepository(dao.NewShowDAO(db))
	performanceSvc := service.NewPerformanceService(performanceRepo, showRepo)

	handler := v1.NewFOHHandler(s.reservations, performanceSvc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	showRepo := repository.NewShowRepository(dao.NewShowDAO(db))
	performanceRepo := repository.NewPerformanceRepository(dao.NewPerformanceDAO(db))
	svc := service.NewTicketService(ticketRepo, showRepo, performanceRepo)
	handler := v1.NewTicketHandler(svc)

	return handler
}

func (s *Server) initVenueHandler(db *gorm.DB) *v1.VenueHandler {
	venueDAO := dao.NewVenueDAO(db)
	repo := repository.NewVenueRepository(venueDAO)
	svc := service.NewVenueService(repo)
	handler := v1.NewVenueHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	show        *v1.ShowHandler
	performance *v1.PerformanceHandler
	reservation *v1.ReservationHandler
	foh         *v1.FOHHandler
	ticket      *v1.TicketHandler
	venue       *v1.VenueHandler
}

func (s *Server) MountHandlers(userSvc *service.UserService, h handlers) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, userSvc)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)

		public.GET("/shows", h.show.HandleListShows)
		public.GET("/shows/:slug", h.show.HandleGetShow)

		public.GET("/performances/:performanceID", h.performance.HandleGetPerformance)
		public.GET("/performances/:performanceID/pricing", h.performance.HandleGetPricing)
		public.GET("/performances/:performanceID/capacity", h.performance.HandleGetCapacity)
		public.POST("/performances/:performanceID/capacity/check", h.performance.HandleCheckCapacity)

		public.POST("/reservations", h.reservation.HandleCreateReservation)
		public.GET("/reservations/:code", h.reservation.HandleGetReservation)
		public.PUT("/reservations/:code", h.reservation.HandleUpdateReservation)
		public.PUT("/reservations/:code/cancel", h.reservation.HandleCancelReservation)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.GET("/me", h.user.HandleGetMe)
	}

	staff := s.Router.Group(basePath,
		authenticator.VerifyJWT(),
		middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager),
	)
	{
		staff.GET("/foh/dashboard", h.foh.HandleDashboard)
		staff.GET("/foh/reservations", h.foh.HandleListReservations)
		staff.POST("/foh/reservations/walk-up", h.foh.HandleWalkUpSale)
		staff.POST("/foh/reservations/expire", h.foh.HandleExpireOverdue)
		staff.PUT("/foh/reservations/:code/collect", h.foh.HandleCollectReservation)
		staff.PUT("/foh/reservations/:code/cancel", h.foh.HandleAdminCancelReservation)
		staff.PUT("/foh/reservations/:code/reinstate", h.foh.HandleReinstateReservation)
		staff.PUT("/foh/reservations/:code/no-show", h.foh.HandleMarkNoShow)
		staff.GET("/foh/performances/:performanceID/summary", h.foh.HandlePerformanceSummary)

		staff.GET("/admin/shows", h.show.HandleAdminListShows)
		staff.POST("/admin/shows", h.show.HandleCreateShow)
		staff.GET("/admin/shows/:showID", h.show.HandleAdminGetShow)
		staff.PUT("/admin/shows/:showID", h.show.HandleUpdateShow)
		staff.DELETE("/admin/shows/:showID", h.show.HandleDeleteShow)
		staff.PUT("/admin/shows/:showID/publish", h.show.HandlePublishShow)
		staff.PUT("/admin/shows/:showID/unpublish", h.show.HandleUnpublishShow)

		staff.GET("/admin/shows/:showID/performances", h.performance.HandleListShowPerformances)
		staff.POST("/admin/shows/:showID/performances", h.performance.HandleCreatePerformance)
		staff.PUT("/admin/performances/:performanceID", h.performance.HandleUpdatePerformance)
		staff.DELETE("/admin/performances/:performanceID", h.performance.HandleDeletePerformance)

		staff.GET("/admin/ticket-types", h.ticket.HandleListTicketTypes)
		staff.POST("/admin/ticket-types", h.ticket.HandleCreateTicketType)
		staff.PUT("/admin/ticket-types/:ticketTypeID", h.ticket.HandleUpdateTicketType)

		staff.GET("/admin/shows/:showID/ticket-prices", h.ticket.HandleListShowPrices)
		staff.POST("/admin/shows/:showID/ticket-prices", h.ticket.HandleCreateShowPrice)
		staff.PUT("/admin/ticket-prices/shows/:priceID", h.ticket.HandleUpdateShowPrice)
		staff.DELETE("/admin/ticket-prices/shows/:priceID", h.ticket.HandleDeleteShowPrice)

		staff.GET("/admin/performances/:performanceID/ticket-prices", h.ticket.HandleListPerformancePrices)
		staff.POST("/admin/performances/:performanceID/ticket-prices", h.ticket.HandleCreatePerformancePrice)
		staff.PUT("/admin/ticket-prices/performances/:priceID", h.ticket.HandleUpdatePerformancePrice)
		staff.DELETE("/admin/ticket-prices/performances/:priceID", h.ticket.HandleDeletePerformancePrice)

		staff.GET("/admin/venues", h.venue.HandleListVenues)
		staff.POST("/admin/venues", h.venue.HandleCreateVenue)
		staff.GET("/admin/venues/:venueID", h.venue.HandleGetVenue)
		staff.PUT("/admin/venues/:venueID", h.venue.HandleUpdateVenue)
		staff.DELETE("/admin/venues/:venueID", h.venue.HandleDeleteVenue)
	}

	admins := s.Router.Group(basePath,
		authenticator.VerifyJWT(),
		middleware.RequireRoles(domain.RoleAdmin),
	)
	{
		admins.GET("/admin/users", h.user.HandleListUsers)
		admins.POST("/admin/users", h.user.HandleCreateStaff)
		admins.GET("/admin/users/:userID", h.user.HandleGetUser)
		admins.PUT("/admin/users/:userID", h.user.HandleUpdateUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Oak Theatre box office API"
	docs.SwaggerInfo.Description = "Show listings, ticket reservations and front of house tooling."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// StartExpirySweep flips overdue pending reservations to EXPIRED on a fixed
// interval. It returns immediately and sweeps in the background.
func (s *Server) StartExpirySweep() {
	minutes := s.Config.API.ExpirySweepMinutes
	if minutes <= 0 {
		minutes = 15
	}

	go func() {
		ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			expired, err := s.reservations.ExpireOverdue(context.Background())
			if err != nil {
				zap.L().Error("expiry sweep failed", zap.Error(err))
				continue
			}

			if expired > 0 {
				zap.L().Info("expired overdue reservations", zap.Int64("count", expired))
			}
		}
	}()
}
