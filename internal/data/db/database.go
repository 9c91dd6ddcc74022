package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrNoDatabase is returned when storage never came up.
var ErrNoDatabase = errors.New("database unavailable")

type Config struct {
	Driver   string `yaml:"driver"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	PoolSize int    `yaml:"pool_size"`
	// DSN, when set, is handed to the driver verbatim.
	DSN string `yaml:"dsn"`
}

type Service struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	driver string
	log    *logger.Logger
}

func NewService(logg *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := logg.With("service", "DatabaseService", "driver", cfg.Driver)

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}
	return Wrap(serviceLog, gdb, cfg)
}

// Wrap adopts an already opened connection and applies pool settings.
func Wrap(logg *logger.Logger, gdb *gorm.DB, cfg Config) (*Service, error) {
	if gdb == nil {
		return nil, ErrNoDatabase
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if cfg.PoolSize > 0 {
		sqlDB.SetMaxOpenConns(cfg.PoolSize)
		sqlDB.SetMaxIdleConns(cfg.PoolSize)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if logg == nil {
		logg = logger.NewNop()
	}
	return &Service{db: gdb, sqlDB: sqlDB, driver: cfg.Driver, log: logg}, nil
}

func (s *Service) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Ping checks connectivity with a round trip to the server.
func (s *Service) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return ErrNoDatabase
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Service) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	s.log.Info("Closing database pool")
	return s.sqlDB.Close()
}

func Dialector(cfg Config) (gorm.Dialector, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverMySQL, "":
		if dsn == "" {
			dsn = MySQLDSN(cfg)
		}
		return gormmysql.Open(dsn), nil
	case DriverPostgres, "postgresql", "pg":
		if dsn == "" {
			dsn = PostgresDSN(cfg)
		}
		return postgres.Open(dsn), nil
	case DriverSQLite:
		if dsn == "" {
			dsn = cfg.Name
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func MySQLDSN(cfg Config) string {
	mc := mysqldrv.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = hostPort(cfg.Host, cfg.Port, 3306)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func PostgresDSN(cfg Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     hostPort(cfg.Host, cfg.Port, 5432),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func hostPort(host string, port, def int) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = "localhost"
	}
	if port <= 0 {
		port = def
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
