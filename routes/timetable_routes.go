package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func TimetableRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	timetable := api.Group("/timetable", middleware.Protected())
	timetable.Post("", middleware.AdminRequired(), handlers.CreateTimetableEntry)
	timetable.Delete("/:entryId", middleware.AdminRequired(), handlers.DeleteTimetableEntry)
	timetable.Get("/me", middleware.TeacherRequired(), handlers.GetTeacherTimetable)
	timetable.Get("/:grade", handlers.GetGradeTimetable)
}
