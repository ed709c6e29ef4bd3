package controller

import (
	"net/http"

	"boardhub/logger"
	"boardhub/web/middleware"
	"boardhub/web/websocket"

	gorilla "github.com/gorilla/websocket"

	"github.com/gin-gonic/gin"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketController upgrades /ws connections and hands them to the hub.
type WebSocketController struct {
	hub *websocket.Hub
}

func NewWebSocketController(g *gin.RouterGroup, hub *websocket.Hub) *WebSocketController {
	w := &WebSocketController{hub: hub}

	g.GET("/ws", middleware.LoginRequired(), w.handle)

	return w
}

func (w *WebSocketController) handle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Debug("WebSocket upgrade failed:", err)
		return
	}

	client := websocket.NewClient(w.hub, conn, user.Id)
	client.Serve()
}
