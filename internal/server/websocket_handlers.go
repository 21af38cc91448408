package server

import (
	"context"
	"encoding/json"
	"log"

	"qubeia/internal/middleware"
	"qubeia/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for direct messages and
// announcements. Clients authenticate with a single-use ticket issued by
// IssueWSTicket.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		ctx := context.Background()

		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			log.Printf("WebSocket: Failed to get user %d: %v", userID, err)
			_ = conn.Close()
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		log.Printf("WebSocket: User %d (%s) connected", userID, user.Username)

		// The socket is receive-only except for presence pings; sending a
		// DM goes through the REST endpoint.
		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var incoming map[string]interface{}
			if err := json.Unmarshal(message, &incoming); err != nil {
				log.Printf("WebSocket: Invalid message format from user %d", userID)
				return
			}

			msgType, ok := incoming["type"].(string)
			if !ok {
				return
			}

			switch msgType {
			case "ping":
				c.TrySend([]byte(`{"type":"pong"}`))
			default:
				// Unknown message types are dropped.
			}
		}

		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"user_id":  userID,
				"username": user.Username,
			},
		})
		client.TrySend(welcome)

		go client.WritePump()
		client.ReadPump()
	})
}
