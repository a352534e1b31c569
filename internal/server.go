package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/studynotes/studynotes/internal/chapters"
	"github.com/studynotes/studynotes/internal/config"
	"github.com/studynotes/studynotes/internal/db"
	"github.com/studynotes/studynotes/internal/filestore"
	"github.com/studynotes/studynotes/internal/instrumentation"
	"github.com/studynotes/studynotes/internal/middleware"
	"github.com/studynotes/studynotes/internal/notes"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config    *config.Config
	dbPool    *pgxpool.Pool
	diskStore *filestore.DiskStore

	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
}

type NewServerParams struct {
	Config *config.Config
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: params.Config.PostgresHost,
		DBPort: params.Config.PostgresPort,
		DBName: params.Config.PostgresDBName,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := instrumentation.SetupPrometheus(pgxpoolCollector)
	instr := instrumentation.NewInstrumentation("studynotes", "backend", promRegistry)

	diskStore, err := filestore.NewDiskStore(params.Config.UploadsPath)
	if err != nil {
		return nil, fmt.Errorf("new disk store: %w", err)
	}

	return &Server{
		config:       params.Config,
		dbPool:       dbPool,
		diskStore:    diskStore,
		instr:        instr,
		promRegistry: promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()

	notesRepo := notes.NewRepo(s.dbPool)
	notesHandler := notes.NewHandler(notesRepo, s.diskStore, s.instr)
	chaptersHandler := chapters.NewHandler()
	uploadsHandler := filestore.NewHandler(s.diskStore)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/notes", notesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-notes")
	apiRouter.HandleFunc("/notes", notesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-note")
	apiRouter.HandleFunc("/notes/{id}", notesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-note")
	apiRouter.HandleFunc("/notes/{paper}/{chapterId}", notesHandler.HandleListByChapter).Methods("GET", "OPTIONS").Name("list-chapter-notes")
	apiRouter.HandleFunc("/chapters/{paper}", chaptersHandler.HandleList).Methods("GET", "OPTIONS").Name("list-chapters")

	// stored note images, served read-only
	r.HandleFunc("/uploads/{name}", uploadsHandler.HandleGetFile).Methods("GET", "OPTIONS").Name("get-upload")

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) SetupAndServe(host string, port int) {
	r := s.routerSetup()

	ipAndPort := fmt.Sprintf("%s:%d", host, port)
	s.httpServer = &http.Server{
		Handler: r,
		Addr:    ipAndPort,
		// uploads can be chunky, leave some room
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	s.serveMetrics(host)

	s.instr.GaugeLifeSignal.Set(1)

	log.Infof(" > server listening on: [%s]", ipAndPort)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("listen and serve: %s", err)
	}
}

func (s *Server) serveMetrics(host string) {
	if s.config.MetricsPort <= 0 {
		log.Warnln("metrics port not set, prometheus metrics not served")
		return
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Path("/metrics").Handler(promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	metricsAddr := fmt.Sprintf("%s:%d", host, s.config.MetricsPort)
	s.metricsHttpServer = &http.Server{
		Handler:      metricsRouter,
		Addr:         metricsAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Infof(" > metrics server listening on: [%s]", metricsAddr)
		if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server listen and serve: %s", err)
		}
	}()
}

func (s *Server) GracefulShutdown() {
	log.Debugln("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 10
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics server: %s", err)
		}
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
	}

	if s.dbPool != nil {
		s.dbPool.Close()
	}

	log.Warnln("server shut down")
}
