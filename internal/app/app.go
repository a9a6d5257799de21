package app

import (
	"context"

	"dayflow/internal/announcement"
	"dayflow/internal/attendance"
	"dayflow/internal/auth"
	"dayflow/internal/config"
	"dayflow/internal/employee"
	"dayflow/internal/leave"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/payroll"
	"dayflow/internal/rbac"
	"dayflow/internal/report"
	"dayflow/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// App owns every long-lived component of the API process. Build wires them,
// cmd/api runs them.
type App struct {
	Config config.Config
	Store  *store.Store
	Redis  *redis.Client
	Outbox *kafka.Outbox
	writer *kafkago.Writer
	logger *zap.Logger

	rbacService rbac.Service

	authHandler         *auth.Handler
	employeeHandler     *employee.Handler
	attendanceHandler   *attendance.Handler
	leaveHandler        *leave.Handler
	payrollHandler      *payroll.Handler
	reportHandler       *report.Handler
	announcementHandler *announcement.Handler
}

func Build(cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, logger: logger}

	a.Store = store.New(store.NewFilePersister(cfg.DataFile), logger)

	// Redis and kafka are optional: with no address configured the handlers
	// fall back to nil-safe no-ops.
	if cfg.RedisAddr != "" {
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	var publisher kafka.Publisher = kafka.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		a.Outbox = kafka.NewOutbox(256, logger)
		a.writer = kafka.NewWriter(cfg.KafkaBrokers)
		publisher = a.Outbox
	}

	rbacService, err := rbac.NewService()
	if err != nil {
		return nil, err
	}
	a.rbacService = rbacService

	employeeRepo := employee.NewRepository(a.Store)
	attendanceRepo := attendance.NewRepository(a.Store)
	leaveRepo := leave.NewRepository(a.Store)
	announcementRepo := announcement.NewRepository(a.Store)

	// Registrations are done; load the snapshot.
	if err := a.Store.Open(); err != nil {
		return nil, err
	}

	authService := auth.NewService(employeeRepo, publisher, cfg.JWTSecret, cfg.TokenTTL, logger)
	employeeService := employee.NewService(employeeRepo, logger)
	attendanceService := attendance.NewService(attendanceRepo, logger)
	leaveService := leave.NewService(leaveRepo, employeeRepo, publisher, logger)
	payrollService := payroll.NewService(employeeRepo, logger)
	reportService := report.NewService(employeeRepo, attendanceRepo, leaveRepo, logger)
	announcementService := announcement.NewService(announcementRepo, logger)

	a.authHandler = auth.NewHandler(authService)
	a.employeeHandler = employee.NewHandler(employeeService, logger)
	a.attendanceHandler = attendance.NewHandler(attendanceService, logger)
	a.leaveHandler = leave.NewHandler(leaveService, a.Redis, logger)
	a.payrollHandler = payroll.NewHandler(payrollService, a.Redis, logger)
	a.reportHandler = report.NewHandler(reportService, logger)
	a.announcementHandler = announcement.NewHandler(announcementService, logger)

	return a, nil
}

// RegisterRoutes mounts every module under /api/v1.
func (a *App) RegisterRoutes(engine *gin.Engine) {
	v1 := engine.Group("/api/v1")

	auth.RegisterRoutes(v1, a.authHandler)
	employee.RegisterRoutes(v1, a.employeeHandler, a.rbacService)
	attendance.RegisterRoutes(v1, a.attendanceHandler, a.rbacService)
	leave.RegisterRoutes(v1, a.leaveHandler, a.rbacService, a.Redis)
	payroll.RegisterRoutes(v1, a.payrollHandler, a.rbacService)
	report.RegisterRoutes(v1, a.reportHandler, a.rbacService)
	announcement.RegisterRoutes(v1, a.announcementHandler, a.rbacService)
}

// StartPublisher runs the kafka publish worker until ctx ends. No-op when
// kafka is not configured.
func (a *App) StartPublisher(ctx context.Context) {
	if a.Outbox == nil || a.writer == nil {
		return
	}
	go kafka.RunPublisher(ctx, a.Outbox, a.writer, a.logger)
}

// Close releases external connections.
func (a *App) Close() {
	if a.writer != nil {
		if err := a.writer.Close(); err != nil {
			a.logger.Warn("kafka writer close failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
}
