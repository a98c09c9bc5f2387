package cli

import (
	"context"
	"os/signal"
	"school_quiz_backend/internal/app"
	"school_quiz_backend/internal/config"
	"school_quiz_backend/pkg/logger"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(configDir *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			cfg.ForceMigrate = migrate

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, *configDir)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, configDir string) error {
	application, err := app.NewApp(ctx, cfg, configDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return application.Run(ctx)
}
