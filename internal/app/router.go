package app

import (
	"school_quiz_backend/docs"
	"school_quiz_backend/internal/middleware"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/health", c.health.HealthCheck)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 每日测验
	quiz := rg.Group("/quiz")
	{
		quiz.GET("/daily", c.quiz.GetDailyPaper)
		quiz.POST("/attempts", middleware.RoleMiddleware(model.Student), c.quiz.SubmitAttempt)
		quiz.GET("/attempts", c.quiz.GetHistory)
		quiz.GET("/result", c.quiz.GetResult)
		quiz.GET("/leaderboard", c.quiz.GetLeaderboard)
	}

	// 代金券与礼品
	rg.GET("/vouchers", c.voucher.ListMine)
	rg.POST("/vouchers/redeem", middleware.RoleMiddleware(model.Student), c.voucher.Redeem)
	rg.GET("/products", c.product.ListProducts)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Faculty))
	{
		// 学校
		admin.GET("/schools", c.school.ListSchools)
		admin.GET("/schools/:id", c.school.GetSchool)
		admin.POST("/schools", c.school.CreateSchool)
		admin.PUT("/schools/:id", c.school.UpdateSchool)
		admin.DELETE("/schools/:id", c.school.DeleteSchool)

		// 学生名册
		admin.GET("/students", c.user.ListStudents)
		admin.POST("/students", c.user.CreateStudent)
		admin.PUT("/students/:id", c.user.UpdateStudent)
		admin.POST("/students/:id/reset-password", c.user.ResetPassword)

		// 题库
		admin.GET("/questions", c.question.ListQuestions)
		admin.POST("/questions", c.question.CreateQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		// 礼品
		admin.GET("/products", c.product.ListAllProducts)
		admin.POST("/products", c.product.CreateProduct)
		admin.PUT("/products/:id", c.product.UpdateProduct)
		admin.DELETE("/products/:id", c.product.DeleteProduct)
		admin.POST("/products/:id/image", c.product.UploadImage)

		// 批量清除提交记录：仅限管理员
		admin.DELETE("/attempts", middleware.RoleMiddleware(model.Admin), c.quiz.WipeAttempts)
	}
}
