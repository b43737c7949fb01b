package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func AnalyticsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	analytics := api.Group("/analytics", middleware.Protected(), middleware.TeacherRequired())
	analytics.Get("/students", handlers.ListStudents)
	analytics.Get("/students/:studentId/performance", handlers.GetStudentPerformance)
	analytics.Get("/students/:studentId/attendance", handlers.GetAttendanceInsights)
}
