package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/server/handlers"
	"github.com/Jakababa94/mandazi-metrics/internal/service/auth"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Ingredient *handlers.IngredientHandler
	Recipe     *handlers.RecipeHandler
	Batch      *handlers.BatchHandler
	Sale       *handlers.SaleHandler
	FixedCost  *handlers.FixedCostHandler
	Dashboard  *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/api/auth/signup", h.Auth.Signup)
	r.POST("/api/auth/login", h.Auth.Login)

	api := r.Group("/api", sessionMiddleware(authSvc))

	api.GET("/ingredients", h.Ingredient.List)
	api.POST("/ingredients", h.Ingredient.Create)
	api.GET("/ingredients/:id", h.Ingredient.Get)
	api.PUT("/ingredients/:id", h.Ingredient.Update)
	api.DELETE("/ingredients/:id", h.Ingredient.Delete)

	api.GET("/recipes", h.Recipe.List)
	api.POST("/recipes", h.Recipe.Create)
	api.GET("/recipes/:id", h.Recipe.Get)
	api.PUT("/recipes/:id", h.Recipe.Update)
	api.DELETE("/recipes/:id", h.Recipe.Delete)

	api.GET("/batches", h.Batch.List)
	api.POST("/batches", h.Batch.Create)
	api.GET("/batches/:id", h.Batch.Get)
	api.PUT("/batches/:id", h.Batch.Update)
	api.DELETE("/batches/:id", h.Batch.Delete)

	api.GET("/sales", h.Sale.List)
	api.POST("/sales", h.Sale.Create)
	api.DELETE("/sales/:id", h.Sale.Delete)

	api.GET("/fixed-costs", h.FixedCost.List)
	api.POST("/fixed-costs", h.FixedCost.Create)
	api.PUT("/fixed-costs/:id", h.FixedCost.Update)
	api.DELETE("/fixed-costs/:id", h.FixedCost.Delete)

	api.GET("/dashboard", h.Dashboard.Show)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// sessionMiddleware resolves the bearer token into an explicit session
// value on the request context.
func sessionMiddleware(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := authSvc.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
