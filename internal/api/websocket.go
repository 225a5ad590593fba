package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Lectionarium/core/bible"
	"github.com/FocuswithJustin/Lectionarium/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// streamMessage is one frame of a passage stream: a verse, an error,
// or the end-of-stream marker.
type streamMessage struct {
	Type  string `json:"type"` // "verse", "error", "done"
	Addr  string `json:"addr,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// handlePassageSocket streams the verses of a citation over a
// WebSocket connection, one verse per message, then closes.
func (s *Server) handlePassageSocket(w http.ResponseWriter, r *http.Request) {
	cite := r.URL.Query().Get("cite")
	if cite == "" {
		respondError(w, http.StatusBadRequest, "MISSING_CITATION", "Query parameter 'cite' is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WarnContext(r.Context(), "websocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()
	logging.WebSocketEvent("passage_stream_opened", 1, "citation", cite)

	verses, err := bible.Verses(s.canon, cite)
	if err != nil {
		conn.WriteJSON(streamMessage{Type: "error", Error: err.Error()})
		return
	}

	for _, v := range verses {
		msg := streamMessage{Type: "verse", Addr: v.Addr.String(), Text: v.Text}
		if err := conn.WriteJSON(msg); err != nil {
			logging.WebSocketEvent("passage_stream_aborted", 0,
				"citation", cite, "error", err.Error())
			return
		}
	}

	conn.WriteJSON(streamMessage{Type: "done"})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	logging.WebSocketEvent("passage_stream_closed", 0,
		"citation", cite, "verses", len(verses))
}
