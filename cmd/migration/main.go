package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/draft-roster/internal/app"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
)

var errUsage = errors.New("usage")

var migrationDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	logger := logging.NewConsole(logging.LevelInfo).Named("migration")
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("load .env failed", "error", err)
	}

	if err := run(os.Args[1:], logger, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration command failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, logger *logging.Logger, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	action, ok := commands[cmd]
	if !ok {
		return crerr.Wrapf(errUsage, "unknown command %q", cmd)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return crerr.New("DB_URL is required")
	}
	disableBinary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))

	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	source := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(source, app.NormalizeDBURL(dbURL, disableBinary))
	if err != nil {
		return crerr.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	return action(m, args[1:], logger.With("source", source), out)
}

type command func(m *migrate.Migrate, args []string, logger *logging.Logger, out io.Writer) error

var commands = map[string]command{
	"up":      migrateUp,
	"down":    migrateDown,
	"version": printVersion,
	"force":   forceVersion,
	"goto":    migrateTo,
}

func migrateUp(m *migrate.Migrate, _ []string, logger *logging.Logger, _ io.Writer) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return crerr.Wrap(err, "apply migrations")
	}
	logger.Info("claim tables up to date")
	return nil
}

func migrateDown(m *migrate.Migrate, args []string, logger *logging.Logger, _ io.Writer) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || n <= 0 {
			return crerr.Newf("down steps must be a positive integer, got %q", args[0])
		}
		steps = n
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return crerr.Wrapf(err, "roll back %d steps", steps)
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func printVersion(m *migrate.Migrate, _ []string, _ *logging.Logger, out io.Writer) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(out, "version: none\ndirty: false")
		return nil
	}
	if err != nil {
		return crerr.Wrap(err, "read version")
	}
	_, _ = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func forceVersion(m *migrate.Migrate, args []string, logger *logging.Logger, _ io.Writer) error {
	version, err := versionArg(args)
	if err != nil {
		return err
	}
	if version > uint64(^uint(0)>>1) {
		return crerr.Newf("version %d is too large", version)
	}
	if err := m.Force(int(version)); err != nil {
		return crerr.Wrapf(err, "force version %d", version)
	}
	logger.Info("version forced", "version", version)
	return nil
}

func migrateTo(m *migrate.Migrate, args []string, logger *logging.Logger, _ io.Writer) error {
	version, err := versionArg(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(uint(version)), logger); err != nil {
		return crerr.Wrapf(err, "migrate to %d", version)
	}
	logger.Info("migrated", "version", version)
	return nil
}

func versionArg(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, crerr.Wrap(errUsage, "a version argument is required")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid version %q", args[0])
	}
	return v, nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

// migrationsDir prefers MIGRATIONS_DIR and falls back to the repo and
// container layouts.
func migrationsDir() (string, error) {
	candidates := append([]string{strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))}, migrationDirCandidates...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", crerr.Newf("migration directory not found, checked MIGRATIONS_DIR and %s", strings.Join(migrationDirCandidates, ", "))
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, "usage: %s <up|down [n]|version|force <v>|goto <v>>\n", name)
	_, _ = fmt.Fprintf(w, "  %s up\n  %s down 1\n  %s goto 1790000000\n", name, name, name)
}
