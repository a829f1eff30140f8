package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	databaseFlag   = "database"
	migrationsFlag = "migrations"
)

type migrationLogger struct {
	logger *zap.SugaredLogger
}

func (ml migrationLogger) Printf(format string, v ...any) {
	ml.logger.Infof(format, v...)
}

func (ml migrationLogger) Verbose() bool { return true }

func main() {
	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	database := pflag.StringP(databaseFlag, "d", "", "database connection string, user:pass@host:port/db")
	migrationsPath := pflag.StringP(migrationsFlag, "m", "migrations", "path to migration files")
	pflag.Parse()

	if *database == "" {
		log.Printf("--%s flag: required", databaseFlag)
		pflag.Usage()
		os.Exit(2)
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", *migrationsPath),
		fmt.Sprintf("pgx5://%s", *database),
	)
	if err != nil {
		logger.Errorw("failed to create migrator", "err", err)
		os.Exit(2)
	}
	m.Log = migrationLogger{logger}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		logger.Errorw("failed to migrate", "err", err)
		os.Exit(2)
	}
	m.Log.Printf("migrations applied")
}
