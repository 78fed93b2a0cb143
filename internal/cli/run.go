package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hupe1980/sonarscan"
	"github.com/hupe1980/sonarscan/promcollector"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
)

const minArgs = 2

// Run is the main entry point. Returns exit code.
// A value received on sigCh cancels the running command.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out, nil)
		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, nil)
		return 1
	}

	if flags.help || len(flags.remaining) == 0 {
		printUsage(out, nil)
		return 0
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)
			return 1
		}
	}

	cfg, source, err := LoadConfig(workDir, flags.configPath, flags.overrides)
	if err != nil {
		fprintln(errOut, "error:", err)
		return 1
	}

	a, err := newApp(cfg, source, workDir, env, errOut)
	if err != nil {
		fprintln(errOut, "error:", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if cfg.MetricsAddr != "" {
		stop, err := a.serveMetrics(cfg.MetricsAddr)
		if err != nil {
			fprintln(errOut, "error:", err)
			return 1
		}
		defer stop()
	}

	commands := a.commands()
	name := flags.remaining[0]

	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(ctx, NewIO(in, out, errOut), flags.remaining[1:])
		}
	}

	fprintln(errOut, "error: unknown command:", name)
	printUsage(errOut, commands)
	return 1
}

type globalFlags struct {
	workDir    string
	configPath string
	help       bool
	overrides  Config
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var g globalFlags

	fs := flag.NewFlagSet("sonarscan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)

	fs.StringVarP(&g.workDir, "cwd", "C", "", "Run as if started in `dir`")
	fs.StringVarP(&g.configPath, "config", "c", "", "Use the specified config `file`")
	fs.BoolVarP(&g.help, "help", "h", false, "Show help")
	fs.IntVar(&g.overrides.Workers, "workers", 0, "Concurrent range scans (0 = GOMAXPROCS)")
	fs.StringVar(&g.overrides.Strategy, "strategy", "", "Pattern search strategy")
	fs.StringVar(&g.overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&g.overrides.LogFormat, "log-format", "", "Log format (text, json)")
	fs.StringVar(&g.overrides.Store, "store", "", "Capture store (local, s3, minio)")
	fs.StringVar(&g.overrides.SpoolDir, "spool-dir", "", "Directory for fetched captures")
	fs.StringVar(&g.overrides.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on `addr`")

	if err := fs.Parse(args); err != nil {
		return globalFlags{}, err
	}

	g.remaining = fs.Args()
	return g, nil
}

// app carries the resolved configuration into commands.
type app struct {
	cfg     Config
	source  string
	workDir string
	env     map[string]string
	logger  *sonarscan.Logger
	metrics sonarscan.MetricsCollector
}

func newApp(cfg Config, source, workDir string, env map[string]string, errOut io.Writer) (*app, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		source:  source,
		workDir: workDir,
		env:     env,
		logger:  sonarscan.NewWriterLogger(errOut, cfg.LogFormat, level),
		metrics: sonarscan.NoopMetricsCollector{},
	}, nil
}

// serveMetrics starts a Prometheus endpoint and routes scanner metrics to
// it. The returned func shuts the server down.
func (a *app) serveMetrics(addr string) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	reg := prometheus.NewRegistry()
	a.metrics = promcollector.New(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func (a *app) commands() []*Command {
	return []*Command{
		a.findCmd(),
		a.scanCmd(),
		a.readCmd(),
		a.statsCmd(),
		a.fetchCmd(),
		a.transformCmd(),
		a.printConfigCmd(),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, `sonarscan - search and decode sonar captures

Usage: sonarscan [options] <command> [args]

Options:
  -C, --cwd <dir>          Run as if started in <dir>
  -c, --config <file>      Use specified config file
      --workers <n>        Concurrent range scans (0 = GOMAXPROCS)
      --strategy <name>    Pattern search strategy (scalar, lanes-16/32/64, avx2, ...)
      --log-level <lvl>    Log level (debug, info, warn, error)
      --log-format <fmt>   Log format (text, json)
      --store <kind>       Capture store (local, s3, minio)
      --spool-dir <dir>    Directory for fetched captures
      --metrics-addr <a>   Serve Prometheus metrics on <a>

Commands:`)

	if commands == nil {
		commands = (&app{}).commands()
	}
	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}
}
