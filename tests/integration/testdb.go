// Package integration runs the API and repositories against a real
// PostgreSQL started with testcontainers and migrated with the embedded
// schema.
package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicapp "github.com/institute/backend/internal/application/academic"
	certapp "github.com/institute/backend/internal/application/certification"
	examapp "github.com/institute/backend/internal/application/exam"
	feeapp "github.com/institute/backend/internal/application/fee"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/migration"
	"github.com/institute/backend/internal/infrastructure/persistence"
	"github.com/institute/backend/internal/interfaces/http/handler"
	"github.com/institute/backend/internal/interfaces/http/middleware"
	"github.com/institute/backend/internal/interfaces/http/router"
	"github.com/institute/backend/tests/testutil"
)

// TestDB is a migrated PostgreSQL database in its own container
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
}

// NewTestDB starts a fresh container and applies all migrations.
// The container is terminated when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("institute_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	migrator, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, migrator.Up(), "Failed to run migrations")

	testDB := &TestDB{DB: db, SqlDB: sqlDB, Container: container, DSN: dsn}
	t.Cleanup(func() {
		_ = sqlDB.Close()
		_ = container.Terminate(context.Background())
	})
	return testDB
}

// CleanTables removes all rows, children first
func (tdb *TestDB) CleanTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{
		"certificates",
		"exam_results",
		"exams",
		"payment_attempts",
		"fee_ledgers",
		"students",
		"courses",
	} {
		require.NoError(t, tdb.DB.Exec("DELETE FROM "+table).Error, "Failed to clean %s", table)
	}
}

// Services are the application services wired over one database
type Services struct {
	Courses      *academicapp.CourseService
	Students     *academicapp.StudentService
	Fees         *feeapp.FeeService
	Payments     *feeapp.PaymentService
	Exams        *examapp.ExamService
	Results      *examapp.ResultService
	Certificates *certapp.CertificateService
	Events       *testutil.RecordingPublisher
	Clock        *shared.FixedClock
}

// NewServices wires every service to the GORM repositories
func NewServices(db *gorm.DB, now time.Time) *Services {
	clock := shared.NewFixedClock(now)
	events := &testutil.RecordingPublisher{}

	courseRepo := persistence.NewGormCourseRepository(db)
	studentRepo := persistence.NewGormStudentRepository(db)
	ledgerRepo := persistence.NewGormFeeLedgerRepository(db)
	paymentRepo := persistence.NewGormPaymentAttemptRepository(db)
	examRepo := persistence.NewGormExamRepository(db)
	resultRepo := persistence.NewGormExamResultRepository(db)
	certRepo := persistence.NewGormCertificateRepository(db)

	s := &Services{Events: events, Clock: clock}

	s.Courses = academicapp.NewCourseService(courseRepo)
	s.Courses.SetClock(clock)
	s.Students = academicapp.NewStudentService(studentRepo)
	s.Students.SetClock(clock)

	feeScope := persistence.NewFeeTransactionScope(db)
	s.Fees = feeapp.NewFeeService(ledgerRepo, paymentRepo, studentRepo, courseRepo, feeScope)
	s.Fees.SetClock(clock)
	s.Fees.SetEventPublisher(events)
	s.Payments = feeapp.NewPaymentService(ledgerRepo, paymentRepo, studentRepo, courseRepo, feeScope)
	s.Payments.SetClock(clock)
	s.Payments.SetEventPublisher(events)
	s.Payments.SetReceiptFormatter(feeapp.NewReceiptFormatter("en-IN", "INR"))

	examScope := persistence.NewExamTransactionScope(db)
	s.Exams = examapp.NewExamService(examRepo, resultRepo, courseRepo, examScope)
	s.Exams.SetClock(clock)
	s.Exams.SetEventPublisher(events)
	s.Results = examapp.NewResultService(examRepo, resultRepo, studentRepo, examScope)
	s.Results.SetClock(clock)
	s.Results.SetEventPublisher(events)

	s.Certificates = certapp.NewCertificateService(certRepo, studentRepo, courseRepo, persistence.NewCertificateTransactionScope(db))
	s.Certificates.SetClock(clock)
	s.Certificates.SetEventPublisher(events)
	return s
}

// NewEngine mounts the full route table the way the server does
func NewEngine(s *Services) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CenterScope(middleware.DefaultCenterScopeConfig(uuid.Nil)))

	groups := router.DomainGroups(router.Handlers{
		Courses:      handler.NewCourseHandler(s.Courses),
		Students:     handler.NewStudentHandler(s.Students),
		Fees:         handler.NewFeeHandler(s.Fees),
		Payments:     handler.NewPaymentHandler(s.Payments),
		Exams:        handler.NewExamHandler(s.Exams),
		Results:      handler.NewResultHandler(s.Results),
		Certificates: handler.NewCertificateHandler(s.Certificates, nil),
	})
	router.NewRouter(engine).Register(router.Registrars(groups)...).Setup()
	return engine
}
