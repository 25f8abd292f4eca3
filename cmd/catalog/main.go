package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/storage/backend"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

// skipStore marks commands that run without opening the catalog.
const skipStore = "skip-store"

// app holds what the commands share once the root pre-run has finished.
type app struct {
	verbose  bool
	user     string
	password string

	// openBackend defaults to backend.Open.
	openBackend func(driver, path string) (backend.Backend, error)

	cfg     config.Config
	locale  language.Tag
	log     *zap.Logger
	backend backend.Backend
	store   *catalog.Store
	gate    *auth.Gate
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the Livraria Aura book catalog",
		Long: `catalog lists, searches and edits the Livraria Aura book catalog.

The catalog is kept in an embedded store selected with CATALOG_STORE_DRIVER
(bbolt, sqlite or memory) and CATALOG_STORE_PATH. Commands that change the
catalog need the admin credentials, given with --user/--password or
CATALOG_ADMIN_USER/CATALOG_ADMIN_PASSWORD.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.user, "user", "", "admin username (default $CATALOG_ADMIN_USER)")
	root.PersistentFlags().StringVar(&a.password, "password", "", "admin password (default $CATALOG_ADMIN_PASSWORD)")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newSeedCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newHashPasswordCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if isBuiltin(cmd) {
		return nil
	}
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.locale, _ = cfg.Language()

	if a.log, err = buildLogger(cfg.LogLevel, a.verbose); err != nil {
		return err
	}

	if cmd.Annotations[skipStore] != "" {
		return nil
	}

	open := a.openBackend
	if open == nil {
		open = backend.Open
	}
	a.backend, err = open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open %s store at %s: %w", cfg.StoreDriver, cfg.StorePath, err)
	}

	a.gate = auth.NewGate(cfg.AdminUser, cfg.AdminPasswordHash)
	a.store = catalog.NewStore(a.backend, catalog.Config{
		Key:        cfg.StoreKey,
		Locale:     a.locale,
		Authorizer: a.gate,
		Logger:     a.log,
	})

	ctx := cmd.Context()
	if err := a.store.Initialize(ctx); err != nil {
		// Reads still work on the empty catalog; the store refuses every
		// write until the snapshot can be read again.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; changes will not be saved\n", err)
		return nil
	}

	if cfg.SeedOnEmpty && cmd.Name() != "seed" {
		if _, err := a.store.SeedIfEmpty(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}
	return nil
}

// isBuiltin reports whether cmd is cobra's help or shell completion, which
// need neither configuration nor the catalog.
func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func (a *app) teardown() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
		a.backend = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// login exchanges the admin credentials for a context that may mutate the
// catalog.
func (a *app) login(ctx context.Context) (context.Context, error) {
	if !a.gate.Enabled() {
		return ctx, errors.New("catalog changes are disabled: set CATALOG_ADMIN_PASSWORD_HASH (see `catalog hash-password`)")
	}

	user, password := a.user, a.password
	if user == "" {
		user = a.cfg.AdminUser
	}
	if password == "" {
		password = a.cfg.AdminPassword
	}

	ctx, err := a.gate.Login(ctx, user, password)
	if err != nil {
		return ctx, fmt.Errorf("login as %q: %w", user, err)
	}
	a.log.Debug("admin logged in", zap.String("user", auth.UsernameFrom(ctx)))
	return ctx, nil
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("CATALOG_LOG_LEVEL: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// run executes the CLI with args. The store is closed even when a command
// fails, since cobra skips PersistentPostRun on errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.teardown()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
