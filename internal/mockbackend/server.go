package mockbackend

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
)

// BasePath is where the orders API is mounted.
const BasePath = "/api/orders"

// Options tunes the simulated service behavior.
type Options struct {
	// Latency is added before every response.
	Latency time.Duration
	// FailureRate is the probability in [0,1] of answering 503.
	FailureRate float64
	// Logger receives one line per request. Defaults to the global logger.
	Logger logging.Logger
}

// Server exposes a Store over the Order Sync Service REST API.
type Server struct {
	store  *Store
	opts   Options
	router *gin.Engine
	logger logging.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New builds the gin router for store.
func New(store *Store, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:  store,
		opts:   opts,
		router: gin.New(),
		logger: opts.Logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if s.logger == nil {
		s.logger = logging.With("component", "mockbackend")
	}

	s.router.Use(gin.Recovery(), s.requestLogger(), s.chaos())
	api := s.router.Group(BasePath)
	api.GET("", s.listOrders)
	api.GET("/stats", s.stats)
	api.POST("/sync/:channel", s.syncChannel)
	api.PUT("/retry/:orderId", s.retryOrder)
	return s
}

// Handler returns the HTTP handler, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock order sync service listening", "addr", addr, "base_path", BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) chaos() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Latency > 0 {
			select {
			case <-time.After(s.opts.Latency):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		if s.opts.FailureRate > 0 && s.roll() < s.opts.FailureRate {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "simulated outage"})
			return
		}
		c.Next()
	}
}

func (s *Server) roll() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Server) listOrders(c *gin.Context) {
	status := domain.OrderStatus(c.Query("status"))
	orders := s.store.List(status, c.Query("channel"))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.store.Stats()})
}

func (s *Server) syncChannel(c *gin.Context) {
	synced, err := s.store.Sync(c.Param("channel"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": synced})
}

func (s *Server) retryOrder(c *gin.Context) {
	order, err := s.store.Retry(c.Param("orderId"))
	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, ErrNotRetryable):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
