package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Post("", handlers.AdminCreateUser)
	users.Put("/:userId", handlers.AdminUpdateUser)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.AdminDeleteUser)

	reports := admin.Group("/reports")
	reports.Post("/attendance", handlers.GenerateAttendanceReport)
	reports.Get("/attendance", handlers.ListAttendanceReports)

	admin.Get("/teacher-attendance", handlers.GetTeacherAttendanceRecords)
}
