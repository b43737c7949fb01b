package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/chatws"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func MessagingRoutes(app *fiber.App, chatHandler *handlers.ChatHandler, channel *chatws.Channel) {
	api := app.Group("/api/v1")

	chat := api.Group("/chat", middleware.Protected())
	chat.Post("/messages", chatHandler.SendMessage)
	chat.Get("/conversations", chatHandler.ListConversations)
	chat.Get("/unread", chatHandler.GetUnreadCounts)
	chat.Get("/:partnerId/messages", chatHandler.GetHistory)
	chat.Post("/:partnerId/read", chatHandler.MarkRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(channel.ServeWs))
}
