package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/enterprise-pos/kds"
	"github.com/yeremiapane/enterprise-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler upgrades to a websocket and streams order, customer,
// notification and dashboard events until the client disconnects.
func KDSHandler(hub *kds.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := staffRole(c)
		if role == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
			return
		}

		hub.Register(ws, kds.Subscriber{Role: role, BranchID: staffBranch(c)})
		utils.InfoLogger.Printf("Websocket client connected (staff=%s, role=%s, branch=%s)", staffID(c), role, staffBranch(c))

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(ws)
	}
}
