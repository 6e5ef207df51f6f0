package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag           = "dsn"
	migrationPathFlag = "migrations-path"
	downFlag          = "down"

	dsnEnvName = "VISIONCART_SQL_DB"
)

type flags struct {
	dsn            string
	migrationsPath string
	down           bool
}

func main() {
	initLogger()
	f := getFlagsValues()
	validateFlags(f)
	makeMigrations(f)
}

func initLogger() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
}

type migrationLogger struct {
	logger *slog.Logger
}

func (ml migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml migrationLogger) Verbose() bool {
	return true
}

func getFlagsValues() flags {
	dsn := pflag.StringP(dsnFlag, "d", os.Getenv(dsnEnvName),
		"postgres url, defaults to $"+dsnEnvName)
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "migrations",
		"directory with *.sql migrations")
	down := pflag.Bool(downFlag, false, "roll back the last migration")
	pflag.Parse()
	return flags{
		dsn:            *dsn,
		migrationsPath: *migrationsPath,
		down:           *down,
	}
}

func validateFlags(f flags) {
	var errs []error

	if f.dsn == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", dsnFlag))
	}

	if f.migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

func makeMigrations(f flags) {
	m, err := migrate.New(
		"file://"+f.migrationsPath,
		toPgx5URL(f.dsn),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	defer m.Close()

	m.Log = migrationLogger{slog.Default()}

	if f.down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		slog.Error("failed to read version", "err", err)
		fallDown()
	}
	slog.Info("migration applied", "version", version, "dirty", dirty)
}

// toPgx5URL swaps the postgres scheme for the one the pgx/v5 driver of
// migrate is registered under.
func toPgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func fallDown() {
	os.Exit(2)
}
