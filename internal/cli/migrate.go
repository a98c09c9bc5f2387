package cli

import (
	"school_quiz_backend/internal/config"
	"school_quiz_backend/pkg/database"
	"school_quiz_backend/pkg/logger"

	"github.com/spf13/cobra"
)

func newMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移后退出",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			logger.InitLogger(cfg)
			defer logger.Sync()

			db, err := database.InitDB(&cfg.Database, false)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Log.Info("数据库迁移完成")
			return nil
		},
	}
}
