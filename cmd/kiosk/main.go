package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/adapters/client/http"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/adapters/export"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/adapters/runtime"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/adapters/terminal"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/config"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/services"
)

type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *logrus.Logger
}

func main() {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "kiosk",
		Short:         "Satisfaction survey kiosk and dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api", "", "survey API base URL (env KIOSK_API_BASE_URL)")
	flags.String("export-dir", "", "directory for text exports (env KIOSK_EXPORT_DIR)")
	flags.String("log-level", "", "log level (env KIOSK_LOG_LEVEL)")
	_ = a.v.BindPFlag(config.KeyAPIBaseURL, flags.Lookup("api"))
	_ = a.v.BindPFlag(config.KeyExportDir, flags.Lookup("export-dir"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(a.voteCmd())
	rootCmd.AddCommand(a.dashboardCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("kiosk failed")
		os.Exit(1)
	}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) api() ports.SurveyAPI {
	return http.NewSurveyClient(a.cfg.APIBaseURL, a.cfg.HTTPTimeout, a.log)
}

func (a *app) voteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote",
		Short: "Run the voting kiosk (keys 1, 2, 3 vote; q quits)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			loop := runtime.NewLoop()
			screen := terminal.NewVoteScreen(os.Stdout, a.cfg.NoColor)
			controller := services.NewVoteController(a.api(), screen, loop, runtime.NewClock(loop), a.log.WithField("screen", "vote"))

			restore, err := terminal.RawInput(os.Stdin)
			if err != nil {
				return err
			}
			defer restore()

			screen.Draw()
			go func() {
				defer stop()
				err := terminal.ReadKeys(ctx, os.Stdin, a.log, func(key rune) {
					loop.Post(func() { controller.KeyPressed(key) })
				})
				if err != nil {
					a.log.WithError(err).Error("failed to read keys")
				}
			}()

			loop.Run(ctx)
			a.log.Info("vote kiosk stopped")
			return nil
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Run the statistics dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			loop := runtime.NewLoop()
			charts := terminal.NewDashboardCharts(os.Stdout, a.cfg.NoColor)
			screen := terminal.NewDashboardScreen(os.Stdout, charts, a.cfg.NoColor)
			log := a.log.WithField("screen", "dashboard")

			controller := services.NewDashboardController(services.DashboardDeps{
				API:        a.api(),
				View:       screen,
				Charts:     charts,
				Downloader: export.NewFileDownloader(a.cfg.ExportDir, log),
				Navigator:  export.NewBrowserNavigator(log),
				Dispatcher: loop,
				Scheduler:  runtime.NewClock(loop),
				Log:        log,
			})

			loop.Post(controller.Start)
			go func() {
				defer stop()
				if err := terminal.ReadCommands(ctx, os.Stdin, loop, screen, controller, log); err != nil {
					log.WithError(err).Error("failed to read commands")
				}
			}()

			loop.Run(ctx)
			controller.Stop()
			log.Info("dashboard stopped")
			return nil
		},
	}
}
