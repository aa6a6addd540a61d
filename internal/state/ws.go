package state

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"shelvd/internal/catalog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer in front
	},
}

// wsCommand is one client event on the live-search socket.
type wsCommand struct {
	Type     string           `json:"type"` // set_query, set_category, set_page, submit, reset
	Q        string           `json:"q,omitempty"`
	Category catalog.Category `json:"category,omitempty"`
	Page     int              `json:"page,omitempty"`
}

// WSHandler serves the live-search socket. Each connection gets its own
// session controller; every state change is pushed to the client as a
// Snapshot.
func WSHandler(fetcher Fetcher, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		ctrl := NewController(fetcher, cfg)
		snapshots, cancel := ctrl.Subscribe()
		defer cancel()

		if err := ws.WriteJSON(ctrl.Snapshot()); err != nil {
			return
		}

		// Writer: one goroutine owns all subsequent writes to the socket.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for snap := range snapshots {
				if err := ws.WriteJSON(snap); err != nil {
					return
				}
			}
		}()

		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				break
			}
			var cmd wsCommand
			if err := json.Unmarshal(msg, &cmd); err != nil {
				log.Printf("search ws: bad command: %v", err)
				continue
			}
			applyCommand(ctrl, r, cmd)
		}

		cancel()
		<-done
	}
}

func applyCommand(ctrl *Controller, r *http.Request, cmd wsCommand) {
	switch cmd.Type {
	case "set_query":
		ctrl.SetQuery(cmd.Q)
	case "set_category":
		if cmd.Category.Valid() {
			ctrl.SetCategory(cmd.Category)
		}
	case "set_page":
		ctrl.SetPage(r.Context(), cmd.Page)
	case "submit":
		ctrl.SubmitSearch(r.Context())
	case "reset":
		ctrl.ResetSearch()
	default:
		log.Printf("search ws: unknown command type %q", cmd.Type)
	}
}
