package router

import (
	"net/http"
	"time"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/handler"
	"github.com/abim/abim-backend/internal/metrics"
	"github.com/abim/abim-backend/internal/middleware"
	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	Course         *handler.CourseHandler
	Blog           *handler.BlogHandler
	Banner         *handler.BannerHandler
	Application    *handler.ApplicationHandler
	Student        *handler.StudentHandler
	Dashboard      *handler.DashboardHandler
	Media          *handler.MediaHandler
	ActivityStream *handler.ActivityStreamHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// counter backs the per-IP rate limits on login and application submission.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	counter middleware.Counter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Msg("Invalid TRUSTED_PROXIES, ignoring forwarded headers")
		_ = router.SetTrustedProxies(nil)
	}

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Metrics())
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	loginLimiter := middleware.NewRateLimiter(counter, "login", cfg.LoginRateLimit, time.Minute, log)
	applicationLimiter := middleware.NewRateLimiter(counter, "course_applications", cfg.ApplicationRateLimit, time.Minute, log)

	api := router.Group("/api")

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	{
		api.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

		api.GET("/courses", handlers.Course.ListCourses)
		api.GET("/courses/:id", handlers.Course.GetCourse)
		api.GET("/blogs", handlers.Blog.ListBlogs)
		api.GET("/blogs/:id", handlers.Blog.GetBlog)
		api.GET("/banners", handlers.Banner.ListBanners)

		api.POST("/course-applications", applicationLimiter.Middleware(), handlers.Application.SubmitApplication)
	}

	// ─── 2. Admin Group (JWT + Redis session) ──────────────────────────
	admin := api.Group("")
	admin.Use(middleware.RequireAdminJWT(authService, log))
	{
		admin.POST("/logout", handlers.Auth.Logout)
		admin.GET("/me", handlers.Auth.Me)

		// Courses
		admin.GET("/admin/courses", handlers.Course.ListAdminCourses)
		admin.POST("/courses", handlers.Course.CreateCourse)
		admin.PUT("/courses/:id", handlers.Course.UpdateCourse)
		admin.DELETE("/courses/:id", handlers.Course.DeleteCourse)

		// Blogs
		admin.POST("/blogs", handlers.Blog.CreateBlog)
		admin.PUT("/blogs/:id", handlers.Blog.UpdateBlog)
		admin.DELETE("/blogs/:id", handlers.Blog.DeleteBlog)

		// Banners
		admin.POST("/banners", handlers.Banner.CreateBanner)
		admin.PUT("/banners/:id", handlers.Banner.UpdateBanner)
		admin.DELETE("/banners/:id", handlers.Banner.DeleteBanner)

		// Applications and the student view derived from them
		admin.GET("/course-applications", handlers.Application.ListApplications)
		admin.PUT("/course-applications/:id/status", handlers.Application.UpdateApplicationStatus)
		admin.GET("/students", handlers.Student.ListStudents)
		admin.GET("/students/:email", handlers.Student.GetStudent)
		admin.PUT("/students/:email/status", handlers.Student.UpdateStudentStatus)

		// Dashboard
		admin.GET("/stats", handlers.Dashboard.GetStats)
		admin.GET("/activities", handlers.Dashboard.ListActivities)

		// Media upload
		admin.POST("/upload", handlers.Media.UploadImage)
	}

	// ─── 3. WebSocket Group (token in query) ───────────────────────────
	ws := router.Group("/ws")
	ws.Use(middleware.RequireWSAuth(authService, log))
	{
		ws.GET("/activities", handlers.ActivityStream.StreamActivities)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}
