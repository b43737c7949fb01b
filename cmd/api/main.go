package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/sandunipw/school_manager/chat"
	"github.com/sandunipw/school_manager/chatws"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/jobs"
	"github.com/sandunipw/school_manager/notifications"
	"github.com/sandunipw/school_manager/routes"
	"github.com/sandunipw/school_manager/services"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	services.SeedSubjects()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("30 9 * * 1-5", jobs.MarkAbsentTeachers)
	c.AddFunc("0 18 * * *", jobs.SendUnreadDigests)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "School Manager",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		PassLocalsToViews: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to School Manager API",
		})
	})

	store := chat.NewGormStore(database.DB)
	hub := chatws.NewHub()
	presence := chatws.NewPresence()
	channel := chatws.NewChannel(store, hub, presence)
	chatHandler := handlers.NewChatHandler(store, channel)
	dashboardHandler := handlers.NewDashboardHandler(store)

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.AdminRoutes(app)
	routes.SubjectRoutes(app)
	routes.AttendanceRoutes(app)
	routes.GradeRoutes(app)
	routes.TimetableRoutes(app)
	routes.AnalyticsRoutes(app)
	routes.UploadRoutes(app)
	routes.MessagingRoutes(app, chatHandler, channel)
	routes.DashboardRoutes(app, dashboardHandler)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
