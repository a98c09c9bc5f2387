package cli

import (
	"fmt"
	"school_quiz_backend/internal/config"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/repository"
	"school_quiz_backend/internal/service"
	"school_quiz_backend/pkg/database"
	"school_quiz_backend/pkg/logger"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateAdminCmd(configDir *string) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "创建管理员账号",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || len(password) < 8 {
				return fmt.Errorf("--email is required and --password must be at least 8 characters")
			}

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

			auth := service.NewAuthService(repository.NewUserRepository(db), repository.NewSchoolRepository(db), cfg.JWT)
			user := &model.User{
				Name:     name,
				Email:    strings.ToLower(strings.TrimSpace(email)),
				Password: password,
				Role:     model.Admin,
			}
			if err := auth.CreateUser(cmd.Context(), user); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id=%d)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "姓名")
	cmd.Flags().StringVar(&email, "email", "", "登录邮箱")
	cmd.Flags().StringVar(&password, "password", "", "登录密码")
	return cmd
}

func newWipeAttemptsCmd(configDir *string) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "wipe-attempts",
		Short: "批量清除测验提交记录，不指定 --day 时清空全部",
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

			var cache service.StandingsCache
			if rdb, err := database.InitRedis(cmd.Context(), &cfg.Redis); err != nil {
				logger.Log.Warn("redis unavailable, skipping cache invalidation", zap.Error(err))
			} else {
				defer rdb.Close()
				cache = service.NewRedisStandingsCache(rdb, cfg.Quiz.StandingsCacheTTL)
			}

			quiz := service.NewQuizService(
				repository.NewAttemptRepository(db),
				repository.NewUserRepository(db),
				nil,
				cache,
				service.NewReleaseGateFromConfig(cfg.Quiz),
				time.Duration(cfg.Quiz.TimeLimitMinutes)*time.Minute,
			)

			deleted, err := quiz.WipeAttempts(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d attempts deleted\n", deleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "日期 YYYY-MM-DD")
	return cmd
}
