package wsserver

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tysyacha/internal/app"
)

const idCookieName = "id"

// Server upgrades HTTP requests to WebSocket connections and hands them to
// Tysyacha table rooms. It is a lightweight development alternative to the
// Nakama runtime adapter; both sit on the same app.Service.
type Server struct {
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
	rooms    map[uint32]*Room
	roomCtr  uint32
	roomsMtx sync.RWMutex
}

func NewServer(log *zap.SugaredLogger) *Server {
	return &Server{
		log:   log,
		rooms: make(map[uint32]*Room),
	}
}

// ServeHTTP expects a "room" query parameter that is either an existing room
// ID or the value "new", plus a "name" parameter for the player. On success
// the connection is upgraded and served by the room's goroutine until the
// client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var clientID uuid.UUID

	if ck, err := r.Cookie(idCookieName); err != nil {
		clientID = uuid.New()
		http.SetCookie(w, &http.Cookie{
			Name:     idCookieName,
			Value:    clientID.String(),
			SameSite: http.SameSiteStrictMode,
		})
	} else if clientID, err = uuid.Parse(ck.Value); err != nil {
		http.Error(w, "Invalid client ID cookie", http.StatusBadRequest)
		return
	}

	playerName := r.URL.Query().Get("name")
	if playerName == "" {
		http.Error(w, "Must specify a player name with 'name' URL query parameter", http.StatusBadRequest)
		return
	}

	roomCode := r.URL.Query().Get("room")
	isNewRoom := roomCode == "new"

	var rm *Room

	if isNewRoom {
		roomName := r.URL.Query().Get("room-name")
		if roomName == "" {
			roomName = playerName + "'s table"
		}

		s.roomsMtx.Lock()
		rm = newRoom(s.roomCtr, roomName, app.NewService(nil), s.log)
		s.roomCtr++
		s.rooms[rm.ID] = rm
		s.roomsMtx.Unlock()

		go func() {
			rm.run()

			s.roomsMtx.Lock()
			delete(s.rooms, rm.ID)
			s.roomsMtx.Unlock()
		}()
	} else {
		if roomID, err := strconv.ParseUint(roomCode, 10, 32); err == nil {
			s.roomsMtx.RLock()
			rm = s.rooms[uint32(roomID)]
			s.roomsMtx.RUnlock()
		}
		if rm == nil {
			http.Error(w, "No such room", http.StatusNotFound)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if isNewRoom {
			s.roomsMtx.Lock()
			delete(s.rooms, rm.ID)
			s.roomsMtx.Unlock()
		}
		s.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	cli := &client{conn, clientID, playerName, rm, make(chan []byte, 100)}
	rm.register <- cli

	go cli.readPump()
	go cli.writePump()
}
