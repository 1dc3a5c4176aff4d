// Command migrate manages the PostgreSQL schema of the costing engine.
// The schema is embedded in the binary; -path points at a directory instead.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/supplements/backend/internal/infrastructure/config"
	"github.com/supplements/backend/internal/infrastructure/logger"
	"github.com/supplements/backend/internal/infrastructure/migration"
	"github.com/supplements/backend/migrations"
	"go.uber.org/zap"
)

func main() {
	var (
		dir      string
		logLevel string
		confirm  bool
	)
	flag.StringVar(&dir, "path", "", "Read migrations from this directory instead of the embedded schema")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&confirm, "confirm", false, "Required by reset")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	var source fs.FS = migrations.FS
	if dir != "" {
		source = os.DirFS(dir)
	}

	switch command {
	case "create":
		if dir == "" {
			dir = "migrations"
		}
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name> [description]")
		}
		desc := ""
		if len(args) > 2 {
			desc = args[2]
		}
		created, err := migration.CreateMigration(dir, args[1], desc)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.Uint("version", created.Version),
			zap.String("up", created.UpPath),
			zap.String("down", created.DownPath),
		)
		return

	case "list":
		all, err := migration.ListMigrations(source)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, m := range all {
			fmt.Printf("  %s (down: %t)\n", m.Base(), m.HasDown)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("SQL migrations target PostgreSQL; sqlite schemas are created at server start",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database", zap.Error(err))
	}

	m, err := migration.New(db, source, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	if err := run(m, command, args[1:], confirm, log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func run(m *migration.Migrator, command string, args []string, confirm bool, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()

	case "rollback":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rollback count %q", args[0])
			}
			n = v
		}
		return m.Rollback(n)

	case "goto":
		if len(args) == 0 {
			return fmt.Errorf("usage: migrate goto <version>")
		}
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(v))

	case "force":
		if len(args) == 0 {
			return fmt.Errorf("usage: migrate force <version>")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(v)

	case "status":
		st, err := m.Status()
		if err != nil {
			return err
		}
		log.Info("Schema status",
			zap.Uint("version", st.Version),
			zap.Bool("dirty", st.Dirty),
			zap.Int("pending", len(st.Pending)),
		)
		for _, p := range st.Pending {
			fmt.Println("  pending:", p.Base())
		}
		return nil

	case "reset":
		if !confirm && !slices.Contains(args, "-confirm") {
			return fmt.Errorf("reset drops every costing table; rerun with -confirm")
		}
		return m.Reset()

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Println(`Supplements costing schema tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply pending migrations
  rollback [n]          Revert the last n migrations (default 1)
  goto <version>        Migrate up or down to a version
  status                Show the applied version and pending migrations
  force <version>       Mark a version as applied, clearing a dirty state
  reset -confirm        Revert every migration
  create <name> [desc]  Write the next numbered up/down pair into ./migrations
  list                  List available migrations

Flags:
  -path string          Migration directory (default: embedded schema)
  -log-level string     debug, info, warn or error (default: info)

Environment Variables:
  SUPP_DATABASE_HOST, SUPP_DATABASE_PORT, SUPP_DATABASE_USER,
  SUPP_DATABASE_PASSWORD, SUPP_DATABASE_DBNAME, SUPP_DATABASE_SSLMODE`)
}
