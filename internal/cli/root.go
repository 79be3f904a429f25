package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/keyedcache"
	"github.com/unkn0wn-root/keyedcache/internal/config"
	zl "github.com/unkn0wn-root/keyedcache/log/zerolog"
	"github.com/unkn0wn-root/keyedcache/promhooks"
	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// Opener opens the store selected by cfg. The caller closes it.
type Opener func(ctx context.Context, cfg *config.Config) (pr.Provider, error)

type Option func(*App)

// WithOpener replaces the backend factory (tests inject an in-memory store).
func WithOpener(o Opener) Option { return func(a *App) { a.open = o } }

// WithLogOutput sends console logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option { return func(a *App) { a.logOut = w } }

// App carries the state shared by every command of one invocation.
type App struct {
	configFile string
	open       Opener
	logOut     io.Writer

	cfg     *config.Config
	log     zerolog.Logger
	reg     *prometheus.Registry
	metrics *promhooks.Metrics
}

// flag name -> viper key
var boundFlags = map[string]string{
	"prefix":    "prefix",
	"backend":   "store.backend",
	"codec":     "codec",
	"log-level": "log_level",
	"metrics":   "metrics",
}

func NewRootCommand(opts ...Option) *cobra.Command {
	a := &App{open: OpenProvider, logOut: os.Stderr}
	for _, o := range opts {
		o(a)
	}

	root := &cobra.Command{
		Use:               "odoo-buddy",
		Short:             "Inspect and edit an odoo-buddy settings store",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./odoo-buddy.yaml, then the user config dir)")
	pf.String("prefix", "", "namespace prepended to every key")
	pf.String("backend", "", "store backend: "+strings.Join(config.Backends, "|"))
	pf.String("codec", "", "value codec: "+strings.Join(config.Codecs, "|"))
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.Bool("metrics", false, "log cache counters when the command finishes")

	root.AddCommand(newKeyCommands(a)...)
	root.AddCommand(newConfigCommand(a), newFavCommand(a))
	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	v := config.New(a.configFile)
	flags := cmd.Root().PersistentFlags()
	for name, key := range boundFlags {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = config.NewLogger(a.logOut, cfg.LogLevel)

	if cfg.Metrics {
		a.reg = prometheus.NewRegistry()
		if a.metrics, err = promhooks.NewMetrics(a.reg); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
	}
	a.log.Debug().
		Str("backend", cfg.Store.Backend).
		Str("prefix", cfg.Prefix).
		Str("codec", cfg.Codec).
		Msg("Configuration loaded")
	return nil
}

// session opens the store for the duration of fn and closes it afterwards.
func (a *App) session(ctx context.Context, fn func(p pr.Provider) error) (err error) {
	p, err := a.open(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", a.cfg.Store.Backend, err)
	}
	defer func() {
		if cerr := p.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("close %s store: %w", a.cfg.Store.Backend, cerr)
		}
		a.reportMetrics()
	}()
	return fn(p)
}

func (a *App) cacheLogger() keyedcache.Logger {
	return zl.New(a.log)
}

func (a *App) hooks() keyedcache.Hooks {
	if a.metrics == nil {
		return nil
	}
	return a.metrics.For(a.cfg.Prefix)
}
