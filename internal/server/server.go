package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	analyticsdomain "github.com/smallbiznis/compass/internal/analytics/domain"
	"github.com/smallbiznis/compass/internal/config"
	obslogger "github.com/smallbiznis/compass/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/compass/internal/observability/metrics"
	obstracing "github.com/smallbiznis/compass/internal/observability/tracing"
	orderdomain "github.com/smallbiznis/compass/internal/order/domain"
	productdomain "github.com/smallbiznis/compass/internal/product/domain"
	"github.com/smallbiznis/compass/internal/ratelimit"
	userdomain "github.com/smallbiznis/compass/internal/user/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{
		Debug:           cfg.IsDev(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	userSvc      userdomain.Service
	productSvc   productdomain.Service
	orderSvc     orderdomain.Service
	analyticsSvc analyticsdomain.Service
	limiter      *ratelimit.TokenBucket
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	UserSvc      userdomain.Service
	ProductSvc   productdomain.Service
	OrderSvc     orderdomain.Service
	AnalyticsSvc analyticsdomain.Service
	Limiter      *ratelimit.TokenBucket `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		userSvc:      p.UserSvc,
		productSvc:   p.ProductSvc,
		orderSvc:     p.OrderSvc,
		analyticsSvc: p.AnalyticsSvc,
		limiter:      p.Limiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.PATCH("/products/:id/stock", s.UpdateProductStock)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)

	// -------- Dashboard --------
	api.GET("/dashboard/analytics", s.AnalyticsRateLimit(), s.GetDashboardAnalytics)
}
