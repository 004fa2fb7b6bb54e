package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin only in practice; the sim carries no secrets.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteWait  = 5 * time.Second
	wsPingPeriod = 30 * time.Second
)

// RegisterEventsFeed streams notify events to websocket subscribers.
// A subscriber that falls behind loses events rather than stalling the
// simulation.
func RegisterEventsFeed(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	Handle(mux, rr, "GET /api/events", "Websocket feed of game events", "", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		events, cancel := app.Engine.Bus.Subscribe()
		defer cancel()
		defer conn.Close()

		// Reader only notices the peer going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}()

		pings := time.NewTicker(wsPingPeriod)
		defer pings.Stop()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-pings.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	})
}
