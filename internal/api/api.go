package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didres/internal/config"
	"github.com/tcfw/didres/internal/utils/logging"
	"github.com/tcfw/didres/pkg/resolver"
)

const (
	defaultRequestTimeout = 30 * time.Second
)

type APIHandler interface {
	Setup(*Api, *gin.RouterGroup) error
}

var (
	reg = []APIHandler{}
)

type BaseHandler struct {
	a *Api
}

func (b *BaseHandler) Setup(a *Api, _ *gin.RouterGroup) error {
	b.a = a
	return nil
}

type Api struct {
	r      *resolver.Client
	cfg    config.API
	engine *gin.Engine
	logger *logrus.Entry

	mu  sync.Mutex
	srv *http.Server
}

// NewAPI builds the HTTP handlers serving resolutions through r. A nil cfg
// uses the package defaults.
func NewAPI(r *resolver.Client, cfg *config.API) (*Api, error) {
	if r == nil {
		return nil, errors.New("nil resolver client")
	}

	a := &Api{
		r:      r,
		logger: logging.Component("api"),
	}
	if cfg != nil {
		a.cfg = *cfg
	}
	if a.cfg.RequestTimeout <= 0 {
		a.cfg.RequestTimeout = defaultRequestTimeout
	}

	a.engine = newEngine(a.logger)

	v1 := a.engine.Group("/api/v1")
	for _, h := range reg {
		if err := h.Setup(a, v1); err != nil {
			return nil, errors.Wrap(err, "registering handler")
		}
	}

	a.engine.GET("/healthz", a.healthz)

	return a, nil
}

func (a *Api) Handler() http.Handler {
	return a.engine
}

func (a *Api) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.engine,
		ReadTimeout:       a.cfg.ReadTimeout,
		ReadHeaderTimeout: a.cfg.ReadTimeout,
	}

	a.mu.Lock()
	a.srv = srv
	a.mu.Unlock()

	a.logger.WithField("addr", addr).Info("starting API")

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *Api) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	srv := a.srv
	a.mu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

// requestContext bounds the ledger call by the configured request timeout
func (a *Api) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), a.cfg.RequestTimeout)
}

func (a *Api) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
