package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/storage"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/tracker"
	"github.com/2beens/gymlog/internal/workouts"
	"github.com/2beens/gymlog/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	cachedKV    *storage.CachedKV
	service     *tracker.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	PostgresUser            string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	s := &Server{
		config: cfg,
	}

	var extraCollectors []prometheus.Collector
	switch cfg.StorageBackend {
	case config.StorageRedis:
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.HoneycombTracingEnabled {
			s.redisClient.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	case config.StoragePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         params.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		s.dbPool = dbPool
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("gymlog", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymlog-backend")
	if err != nil {
		s.closeBackends()
		return nil, err
	}
	s.otelShutdown = otelShutdown

	kv, err := s.newKV(ctx)
	if err != nil {
		s.otelShutdown()
		s.closeBackends()
		return nil, err
	}

	policy := storage.FailFast
	if cfg.StorageRecoverCorrupt {
		policy = storage.RecoverToDefault
	}
	adapter := storage.NewAdapter(
		kv,
		storage.WithCorruptionPolicy(policy),
		storage.WithMetrics(s.metricsManager),
	)
	log.Debugf("storage: backend [%s], corrupt blobs: %s", cfg.StorageBackend, adapter.Policy())

	s.service = tracker.NewService(
		workouts.NewLogStore(adapter, workouts.NewIDGenerator(nil)),
		workouts.NewCatalogStore(adapter),
		s.metricsManager,
		time.Now,
	)

	return s, nil
}

// newKV builds the configured backend, wrapped in freecache when a cache
// size is set.
func (s *Server) newKV(ctx context.Context) (storage.KV, error) {
	var kv storage.KV
	switch s.config.StorageBackend {
	case config.StorageMemory:
		kv = storage.NewMemoryKV()
	case config.StorageDisk:
		diskKV, err := storage.NewDiskKV(s.config.DiskStoragePath)
		if err != nil {
			return nil, fmt.Errorf("new disk kv: %w", err)
		}
		kv = diskKV
	case config.StorageRedis:
		kv = storage.NewRedisKV(s.redisClient, s.config.StorageKeyPrefix)
	case config.StoragePostgres:
		pgKV := storage.NewPostgresKV(s.dbPool, s.config.StorageKeyPrefix)
		if err := pgKV.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure kv schema: %w", err)
		}
		kv = pgKV
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", s.config.StorageBackend)
	}

	if s.config.CacheSizeMB > 0 {
		s.cachedKV = storage.NewCachedKV(kv, s.config.CacheSizeMB)
		kv = s.cachedKV
	}

	return kv, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymlog-router"))

	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil && s.config.RateLimitAllowedPerMin > 0 {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}

	trackerHandler := tracker.NewHandler(s.service)
	trackerHandler.SetupRoutes(r, rateLimiter, s.config.RateLimitAllowedPerMin, s.metricsManager)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, "404 page not found", http.StatusNotFound)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) metricsRouter() *mux.Router {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	return metricsRouter
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: s.metricsRouter(),
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) closeBackends() error {
	var err error
	if s.redisClient != nil {
		if rErr := s.redisClient.Close(); rErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", rErr))
		}
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	return err
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if sErr := s.httpServer.Shutdown(ctx); sErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", sErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if sErr := s.metricsHttpServer.Shutdown(ctx); sErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", sErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.cachedKV != nil {
		log.Debugf("blob cache: hits %d, misses %d", s.cachedKV.HitCount(), s.cachedKV.MissCount())
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	err = multierr.Append(err, s.closeBackends())

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
