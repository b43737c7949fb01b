package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func DashboardRoutes(app *fiber.App, dashboard *handlers.DashboardHandler) {
	api := app.Group("/api/v1")

	dash := api.Group("/dashboard", middleware.Protected())
	dash.Get("/student", dashboard.GetStudentDashboard)
	dash.Get("/teacher", middleware.TeacherRequired(), dashboard.GetTeacherDashboard)
	dash.Get("/parent", dashboard.GetParentDashboard)
	dash.Get("/admin", middleware.AdminRequired(), dashboard.GetAdminDashboard)
}
