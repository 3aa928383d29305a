package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RateLimitPerMin int
	CORSOrigins     []string
}

// NewRouter assembles the API consumed by the browser dashboard.
func NewRouter(appts *AppointmentHandler, dir *DirectoryHandler, bill *BillingHandler, log *zap.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(RateLimit(cfg.RateLimitPerMin, log))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
		})

		clients := api.Group("/clients")
		{
			clients.GET("", dir.ListClients)
			clients.POST("", dir.CreateClient)
			clients.PATCH("/:id", dir.UpdateClient)
			clients.DELETE("/:id", dir.DeleteClient)
		}

		staff := api.Group("/staff")
		{
			staff.GET("", dir.ListStaff)
			staff.POST("", dir.CreateStaff)
		}

		services := api.Group("/services")
		{
			services.GET("", dir.ListServices)
			services.POST("", dir.CreateService)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", appts.List)
			appointments.POST("", appts.Create)
			appointments.PATCH("/:id", appts.Update)
			appointments.DELETE("/:id", appts.Delete)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", bill.ListInvoices)
			invoices.POST("", bill.CreateInvoice)
		}

		api.POST("/payments/collect", bill.CollectPayment)
	}

	return r
}
