package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"inventory_backend/bootstrap"
	"inventory_backend/core"
	"inventory_backend/logging"
	"inventory_backend/resource"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliOptions holds the command-line flags. Set flags override the
// environment.
type cliOptions struct {
	envFile    string
	dev        bool
	dataRoot   string
	targetRoot string
	quiet      bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, *pflag.FlagSet, error) {
	opts := &cliOptions{}
	fs := pflag.NewFlagSet("inventory-bootstrap", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.envFile, "env-file", "", "load configuration from this .env file (default: ./.env if present)")
	fs.BoolVar(&opts.dev, "dev", false, "development run: resolve the seed from the project tree")
	fs.StringVar(&opts.dataRoot, "data-root", "", "absolute directory to use instead of the platform data root")
	fs.StringVar(&opts.targetRoot, "target-root", "", "where the data file goes: app-private or shared-parent")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "print nothing on success")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if fs.NArg() > 0 {
		return nil, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, fs, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return core.ExitCodeSuccess
		}
		fmt.Fprintf(stderr, "%v\n\n", err)
		fs.PrintDefaults()
		return core.ExitCodeConfig
	}
	if opts.version {
		fmt.Fprintf(stdout, "inventory-bootstrap %s\n", core.GetVersionInfo())
		return core.ExitCodeSuccess
	}

	cfg, err := loadConfig(opts, stderr)
	if err != nil {
		reportConfigError(stderr, err)
		return core.ExitCodeConfig
	}

	logger, err := logging.NewLoggerWithConfig(cfg.LogLevel, cfg.DevMode, cfg.LogFile, logging.DefaultFileWriterConfig())
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	code := bootstrapAndReport(cfg, logger, stdout, stderr, opts.quiet)
	logger.Debug("Exiting",
		zap.Int("exit_code", code),
		zap.String("status", core.ExitCodeName(code)),
	)
	_ = logger.Sync()
	return code
}

// bootstrapAndReport wires the bootstrapper for cfg and runs it.
func bootstrapAndReport(cfg *core.Config, logger *logging.Logger, stdout, stderr io.Writer, quiet bool) int {
	logger.Debug("Configuration loaded",
		zap.String("version", core.GetVersion()),
		zap.String("app_id", cfg.AppIdentifier),
		zap.String("data_root_override", cfg.DataRootOverride),
		zap.Stringer("target_root", cfg.TargetRoot),
		zap.String("app_subpath", cfg.AppSubpath),
		zap.String("target_file", cfg.TargetFileName),
		zap.String("seed_resource", cfg.SeedResource),
		zap.String("resource_dir", cfg.ResourceDir),
		zap.String("resource_manifest", cfg.ResourceManifest),
		zap.Bool("dev_mode", cfg.DevMode),
	)

	b, err := newBootstrapper(cfg, logger)
	if err != nil {
		logger.Error("Bootstrap setup failed", zap.Error(err))
		reportFailure(stderr, err)
		return core.ExitCodeError
	}
	return runBootstrap(b, logger, stdout, stderr, quiet)
}

// loadConfig reads the .env file and the environment, applies flags, then
// validates the result once so a flag can replace a bad environment value.
func loadConfig(opts *cliOptions, stderr io.Writer) (*core.Config, error) {
	var cfg *core.Config
	if opts.envFile != "" {
		var err error
		if cfg, err = core.ReadConfigFrom(opts.envFile); err != nil {
			return nil, err
		}
	} else {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Warning: could not read .env: %v\n", err)
		}
		cfg = core.ReadConfig()
	}

	if opts.dev && !cfg.DevMode {
		cfg.DevMode = true
		if os.Getenv(core.EnvLogLevel) == "" {
			cfg.LogLevel = zapcore.DebugLevel
		}
	}
	if opts.dataRoot != "" {
		cfg.DataRootOverride = opts.dataRoot
	}
	if opts.targetRoot != "" {
		cfg.TargetRootName = opts.targetRoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBootstrapper wires the host environment and resource locator for cfg.
// A locator that cannot be built means the seed cannot be found, so it is
// reported as a resource resolution failure.
func newBootstrapper(cfg *core.Config, logger *logging.Logger) (*bootstrap.Bootstrapper, error) {
	locator, err := resource.Default(cfg.ResourceSettings(logger.Named("resource")))
	if err != nil {
		return nil, &bootstrap.Error{
			Kind:     bootstrap.ResourceResolution,
			Resource: cfg.SeedResource,
			Err:      err,
		}
	}
	return bootstrap.New(cfg.Environment(), locator, cfg.BootstrapOptions(), logger)
}

// initializer is satisfied by *bootstrap.Bootstrapper.
type initializer interface {
	Initialize() (*bootstrap.Result, error)
}

// runBootstrap runs the first-launch initialization and turns its outcome
// into an exit code. It is the only place bootstrap failures are handled.
func runBootstrap(b initializer, logger *logging.Logger, stdout, stderr io.Writer, quiet bool) int {
	res, err := b.Initialize()
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var bootErr *bootstrap.Error
		if errors.As(err, &bootErr) {
			fields = append(fields,
				zap.String("code", bootErr.Code()),
				zap.Stringer("step", bootErr.Kind),
			)
		}
		logger.Error("Startup aborted: data file could not be initialized", fields...)
		reportFailure(stderr, err)
		return core.ExitCodeError
	}

	if !quiet {
		reportSuccess(stdout, res)
	}
	return core.ExitCodeSuccess
}

func reportSuccess(w io.Writer, res *bootstrap.Result) {
	ok := color.New(color.FgGreen)
	dim := color.New(color.FgHiBlack)
	if res.Created {
		ok.Fprintf(w, "✓ Data file created: %s\n", res.TargetPath)
		dim.Fprintf(w, "    └─ seeded from %s\n", res.SeedPath)
		return
	}
	ok.Fprintf(w, "✓ Data file ready: %s\n", res.TargetPath)
}

func reportFailure(w io.Writer, err error) {
	failColor := color.New(color.FgRed, color.Bold)
	errColor := color.New(color.FgRed)
	dim := color.New(color.FgHiBlack)

	var bootErr *bootstrap.Error
	if !errors.As(err, &bootErr) {
		failColor.Fprintln(w, "✗ Startup failed")
		errColor.Fprintf(w, "    └─ %v\n", err)
		return
	}

	failColor.Fprintf(w, "✗ Startup failed: %s ", bootErr.Kind)
	dim.Fprintf(w, "(%s)\n", bootErr.Code())
	if bootErr.Resource != "" {
		fmt.Fprintf(w, "    resource: %s\n", bootErr.Resource)
	}
	if bootErr.Source != "" {
		fmt.Fprintf(w, "    source:   %s\n", bootErr.Source)
	}
	if bootErr.Path != "" {
		fmt.Fprintf(w, "    path:     %s\n", bootErr.Path)
	}
	if bootErr.Err != nil {
		errColor.Fprintf(w, "    cause:    %v\n", bootErr.Err)
	}
	if action := bootErr.Action(); action != "" {
		color.New(color.FgYellow).Fprintf(w, "    └─ %s\n", action)
	}
}

func reportConfigError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprintf(w, "✗ Configuration error")
	if code := core.GetErrorCode(err); code != "" {
		color.New(color.FgHiBlack).Fprintf(w, " (%s)", code)
	}
	fmt.Fprintln(w)

	cfgErr, ok := core.IsConfigError(err)
	if !ok {
		fmt.Fprintf(w, "    %v\n", err)
		return
	}
	fmt.Fprintf(w, "    %s\n", cfgErr.Message)
	if cfgErr.Action != "" {
		color.New(color.FgYellow).Fprintf(w, "    └─ %s\n", cfgErr.Action)
	}
}
