package db

import (
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/shared-experiences-api/internal/config"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	if conf == nil {
		return nil, fmt.Errorf("postgres settings are missing")
	}

	sslMode := conf.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		conf.Host, conf.User, conf.Password, conf.DB, conf.Port, sslMode)

	return open(postgres.Open(dsn))
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	return open(postgres.Open(url))
}

// OpenMySQL uses go-sql-driver's config so credentials are escaped properly.
func OpenMySQL(conf *config.MySQLConfig) (*gorm.DB, error) {
	if conf == nil {
		return nil, fmt.Errorf("mysql settings are missing")
	}

	mc := mysql.NewConfig()
	mc.User = conf.User
	mc.Passwd = conf.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(conf.Host, conf.Port)
	mc.DBName = conf.DB
	mc.ParseTime = true
	mc.Loc = time.UTC

	return open(gormmysql.Open(mc.FormatDSN()))
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("gdb.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}
