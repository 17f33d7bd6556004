package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wild-oasis-api/internal/handler/api"
	"wild-oasis-api/internal/handler/middleware"
	"wild-oasis-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	cabinHandler *api.CabinHandler,
	paymentHandler *api.PaymentHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, cabinHandler, paymentHandler, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	cabinHandler *api.CabinHandler,
	paymentHandler *api.PaymentHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	paymentRateLimit := middleware.RateLimit(cfg.Server)

	apiGroup := engine.Group("/api")
	{
		cabins := apiGroup.Group("/cabins")
		{
			addRoutes(cabins, []route{
				{Method: http.MethodGet, Path: "", Handler: cabinHandler.ListCabins},
				{Method: http.MethodGet, Path: "/:id", Handler: cabinHandler.GetCabin},
				{Method: http.MethodGet, Path: "/:id/quote", Handler: cabinHandler.QuoteStay},
			})
		}

		payment := apiGroup.Group("/payment")
		{
			addRoutes(payment, []route{
				{Method: http.MethodGet, Path: "/config", Handler: paymentHandler.GetConfig},
			})
		}

		intents := apiGroup.Group("")
		intents.Use(authMiddleware.RequireAuth())
		{
			addRoutes(intents, []route{
				{
					Method:  http.MethodPost,
					Path:    "/create-payment-intent",
					Handler: paymentHandler.CreatePaymentIntent,
					Mw:      []gin.HandlerFunc{paymentRateLimit},
				},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: reservationHandler.CreateReservation,
					Mw:      []gin.HandlerFunc{paymentRateLimit},
				},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.GetGuestReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
