// @title School Quiz 后端 API
// @version 1.0
// @description 学校每日测验、排名公布与代金券兑换服务。

// @contact.name API支持
// @contact.email support@schoolquiz.example

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"os"
	"school_quiz_backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
