package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// handleWebsocket pushes the stats to the client every pushInterval until
// it goes away. Anything the client sends is ignored.
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade already replied to the client
		a.log("couldn't make websocket: %s", err)
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			a.log("could not close websocket: %s", err)
		}
	}(ws)
	a.addClient(ws)
	defer a.removeClient(ws)

	go a.websocketWriter(ws)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (a *Api) addClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	a.wsClients[ws] = true
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) removeClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	delete(a.wsClients, ws)
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) websocketWriter(ws *websocket.Conn) {
	pingTicker := time.NewTicker(a.pushInterval)
	defer pingTicker.Stop()

	timeout := 10 * time.Second
	send := func() error {
		packet, err := json.Marshal(a.Stats)
		if err != nil {
			return err
		}
		err = ws.SetWriteDeadline(time.Now().Add(timeout))
		if err != nil {
			return fmt.Errorf("could not set write deadline: %w", err)
		}
		return ws.WriteMessage(websocket.TextMessage, packet)
	}

	if err := send(); err != nil {
		return
	}
	for range pingTicker.C {
		if err := send(); err != nil {
			return
		}
	}
}
