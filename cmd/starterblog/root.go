package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/starterblog"
)

type globalFlags struct {
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "starterblog",
		Short: "starterblog - a small static blog generator",
		Long: `starterblog renders markdown posts into a static blog: a home page with
the author bio, one page per post, a 404 page, an RSS feed and a sitemap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newBuildCmd(flags),
		newServeCmd(flags),
		newNewCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup creates the logger and loads the site config.
func (f *globalFlags) setup() (*zap.Logger, starterblog.SiteConfig, error) {
	log, err := starterblog.NewLogger(f.debug)
	if err != nil {
		return nil, starterblog.SiteConfig{}, fmt.Errorf("create logger: %w", err)
	}
	cfg, err := starterblog.LoadConfig(f.configFile, log)
	if err != nil {
		_ = log.Sync()
		return nil, starterblog.SiteConfig{}, err
	}
	return log, cfg, nil
}

func newBuildCmd(flags *globalFlags) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, cfg, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			_, err = starterblog.NewBuilder(cfg, log).Build(cmd.Context())
			return err
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides outputDir)")
	return cmd
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, cfg, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app := starterblog.New(cfg, starterblog.WithLogger(log))
			if err := app.Setup(); err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return app.Start(ctx) })
			if watch {
				w, err := starterblog.NewWatcher(log, func(paths []string) {
					log.Info("content changed, reloading", zap.Int("files", len(paths)))
					if err := app.Reload(); err != nil {
						log.Error("reload failed", zap.Error(err))
					}
				}, cfg.ContentDir, cfg.StaticDir)
				if err != nil {
					return fmt.Errorf("start watcher: %w", err)
				}
				g.Go(func() error { return w.Run(ctx) })
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when content or static files change")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the starterblog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "starterblog %s\n", version)
		},
	}
}

func defaultToday() string { return time.Now().Format("2006-01-02") }

// today is the date stamped on the scaffolded sample post.
var today = defaultToday
