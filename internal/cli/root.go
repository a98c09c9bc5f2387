package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

// Execute 运行命令行入口
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("SCHOOL_QUIZ_CONFIG_DIR")
	if envConfig == "" {
		envConfig = "configs"
	}

	cmd := &cobra.Command{
		Use:           "school-quiz",
		Short:         "学校每日测验与奖励后端",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configDir, "config", envConfig, "配置文件所在目录")
	cmd.AddCommand(newServeCmd(&configDir))
	cmd.AddCommand(newMigrateCmd(&configDir))
	cmd.AddCommand(newCreateAdminCmd(&configDir))
	cmd.AddCommand(newWipeAttemptsCmd(&configDir))
	return cmd
}
