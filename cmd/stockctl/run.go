// cmd/stockctl/run.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ammerola/stock-tracker/internal/adapters/db"
	"github.com/ammerola/stock-tracker/internal/adapters/filestore"
	redis_a "github.com/ammerola/stock-tracker/internal/adapters/redis_adapter"
	"github.com/ammerola/stock-tracker/internal/adapters/storage"
	"github.com/ammerola/stock-tracker/internal/core/ports"
	"github.com/ammerola/stock-tracker/internal/core/services"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
	"github.com/ammerola/stock-tracker/internal/pkg/logger"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: stockctl [flags] <command> [args]

Commands:
  demo                      run the walkthrough of every store operation
  add <item> <qty>          add qty of item and save
  remove <item> <qty>       remove qty of item and save
  qty <item>                print the stored quantity of item
  low [-threshold N]        list items below the threshold
  report                    print every item and its quantity
  export -out FILE          write the inventory as an Excel workbook
  import -in FILE           add the rows of an Excel workbook and save

Flags:
`

var errUsage = errors.New("usage error")

// run executes one stockctl invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stockctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	backend := fs.String("backend", "", "snapshot backend: file, redis, s3 or postgres (default from STORE_BACKEND)")
	path := fs.String("path", "", "snapshot name (default from STORE_PATH)")
	dir := fs.String("dir", "", "base directory of the file backend (default from STORE_DIR)")
	verbose := fs.Bool("v", false, "write structured logs to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	command, commandArgs := fs.Arg(0), fs.Args()[1:]

	logOut := io.Discard
	if *verbose {
		logOut = stderr
	}

	cfg, err := config.Load(logger.NewLogger(logOut, "info", "text"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}
	if *path != "" {
		cfg.Store.Path = *path
	}
	if *dir != "" {
		cfg.Store.Dir = *dir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	slogger := logger.SetupLogger(logOut, cfg.App.LogLevel, cfg.App.LogFormat)

	ctx = logger.WithSessionID(ctx, uuid.NewString())
	ctx = logger.WithOperation(ctx, command)
	ctx = logger.WithBackend(ctx, cfg.Store.Backend)

	slogger.InfoContext(ctx, "starting stockctl",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("environment", cfg.App.Environment))

	if err := resolveSecrets(ctx, cfg, slogger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	store, cleanup, err := openStore(ctx, cfg, slogger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer cleanup()

	diag := services.NewDiagnostics(stderr, slogger)
	a := &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		logger: slogger,
		diag:   diag,
		newInventory: func() ports.InventoryService {
			return services.NewInventoryService(store, diag, slogger)
		},
	}

	err = a.dispatch(ctx, command, commandArgs)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return exitUsage
	default:
		slogger.ErrorContext(ctx, "command failed", slog.String("error", err.Error()))
		return exitError
	}
}

func resolveSecrets(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var sm config.SecretsManager = config.NewEnvSecretsManager()
	if cfg.AWS.SecretName != "" {
		aws, err := config.NewAWSSecretsManager(ctx, cfg.AWS.Region, cfg.AWS.SecretName, logger)
		if err != nil {
			return err
		}
		sm = aws
	}
	return cfg.ResolveSecrets(ctx, sm)
}

// openStore builds the snapshot backend selected by cfg. The returned
// cleanup releases any connection the backend holds.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.SnapshotStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendFile:
		return filestore.NewJSONFile(cfg.Store.Dir, cfg.Store.AtomicWrites, logger), noop, nil

	case config.BackendRedis:
		client, err := redis_a.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, noop, err
		}
		store := redis_a.NewSnapshots(client, cfg.Redis.KeyPrefix, 0, logger)
		return store, func() { client.Close() }, nil

	case config.BackendS3:
		store, err := storage.NewS3Snapshots(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			Prefix:          cfg.AWS.S3Prefix,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.BackendPostgres:
		dbConfig := &db.Config{
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			User:               cfg.Database.User,
			Password:           cfg.Database.Password,
			Database:           cfg.Database.Name,
			SSLMode:            cfg.Database.SSLMode,
			MaxConnections:     cfg.Database.MaxConnections,
			ConnectTimeout:     cfg.Database.ConnectTimeout,
			EnableQueryLogging: cfg.App.Debug,
		}

		if cfg.Database.MigrateOnStart {
			if err := runMigrations(ctx, dbConfig, logger); err != nil {
				return nil, noop, err
			}
		}

		database, err := db.Open(ctx, dbConfig, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		return db.NewSnapshotRepository(database, logger), func() { database.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func runMigrations(ctx context.Context, dbConfig *db.Config, logger *slog.Logger) error {
	migrator, err := db.NewMigrator(ctx, dbConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	return migrator.Up(ctx)
}
