package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/internal/lectionary"
)

const johnSample = `3:16 Sic enim Deus dilexit mundum.
3:17 Non enim misit Deus Filium suum.
3:18 Qui credit in eum, non judicatur.
`

const sundayXML = `<?xml version="1.0" encoding="utf-8"?>
<lectionary>
  <cycle id="A">
    <season name="lent">
      <mass name="4th Sunday of Lent">
        <reading>Jn 3:16-18</reading>
      </mass>
    </season>
  </cycle>
</lectionary>
`

const emptyLectionaryXML = `<?xml version="1.0" encoding="utf-8"?>
<lectionary>
</lectionary>
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	canon := books.NewCanon()
	if err := canon.Find("john").Text().LoadString(johnSample); err != nil {
		t.Fatalf("loading john: %v", err)
	}

	dir := t.TempDir()
	files := map[string]string{
		"sunday-lectionary.xml":  sundayXML,
		"weekday-lectionary.xml": emptyLectionaryXML,
		"special-lectionary.xml": emptyLectionaryXML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	lect, err := lectionary.Load(dir)
	if err != nil {
		t.Fatalf("loading lectionary: %v", err)
	}

	return NewServer(canon, lect)
}

func doRequest(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp APIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response for %s: %v", path, err)
	}
	return w, &resp
}

func TestHandlePassage(t *testing.T) {
	s := newTestServer(t)

	w, resp := doRequest(t, s, "/passage?cite=jn+3:16-17")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !resp.Success {
		t.Fatalf("response not successful: %+v", resp.Error)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshaling data: %v", err)
	}
	var p Passage
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("decoding passage: %v", err)
	}
	if len(p.Paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(p.Paragraphs))
	}
	lines := p.Paragraphs[0].Lines
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Addr != "3:16" || lines[1].Addr != "3:17" {
		t.Errorf("line addrs = %q, %q", lines[0].Addr, lines[1].Addr)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response lacks X-Request-ID header")
	}
}

func TestHandlePassageErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		code int
	}{
		{"/passage", http.StatusBadRequest},
		{"/passage?cite=frobnitz+1:1", http.StatusBadRequest},
		{"/passage?cite=jn+99:1", http.StatusNotFound},
		{"/passage?cite=jn+3:99", http.StatusNotFound},
	}
	for _, tt := range tests {
		w, resp := doRequest(t, s, tt.path)
		if w.Code != tt.code {
			t.Errorf("%s: status = %d, want %d", tt.path, w.Code, tt.code)
		}
		if resp.Success || resp.Error == nil {
			t.Errorf("%s: expected error response, got %+v", tt.path, resp)
		}
	}
}

func TestHandleMasses(t *testing.T) {
	s := newTestServer(t)

	w, resp := doRequest(t, s, "/masses")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	ids, ok := resp.Data.([]interface{})
	if !ok || len(ids) != 1 {
		t.Fatalf("data = %v, want one mass ID", resp.Data)
	}
	if ids[0] != "a/4th-sunday-of-lent" {
		t.Errorf("mass ID = %v", ids[0])
	}
	if resp.Meta == nil || resp.Meta.Total != 1 {
		t.Errorf("meta = %+v, want total 1", resp.Meta)
	}
}

func TestHandleReadings(t *testing.T) {
	s := newTestServer(t)

	w, resp := doRequest(t, s, "/readings?q=4th-sunday-of-lent")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %+v", w.Code, resp.Error)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshaling data: %v", err)
	}
	var mr MassReadings
	if err := json.Unmarshal(data, &mr); err != nil {
		t.Fatalf("decoding readings: %v", err)
	}
	if mr.Name != "4th Sunday of Lent" {
		t.Errorf("name = %q", mr.Name)
	}
	if len(mr.Readings) != 1 || len(mr.Readings[0].Verses) != 3 {
		t.Fatalf("readings = %+v, want one reading with 3 verses", mr.Readings)
	}

	w, _ = doRequest(t, s, "/readings?q=no-such-mass")
	if w.Code != http.StatusNotFound {
		t.Errorf("unmatched query status = %d, want 404", w.Code)
	}
	w, _ = doRequest(t, s, "/readings?q=a/b/c")
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed query status = %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	w, resp := doRequest(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	data, _ := json.Marshal(resp.Data)
	var h HealthInfo
	if err := json.Unmarshal(data, &h); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if h.Status != "ok" || h.Books != 1 {
		t.Errorf("health = %+v, want ok with 1 loaded book", h)
	}
}

func TestPassageSocket(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/passage?cite=jn+3:16-18"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	var addrs []string
	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("reading stream: %v", err)
		}
		if msg.Type == "done" {
			break
		}
		if msg.Type != "verse" {
			t.Fatalf("unexpected message %+v", msg)
		}
		addrs = append(addrs, msg.Addr)
	}

	want := []string{"3:16", "3:17", "3:18"}
	if len(addrs) != len(want) {
		t.Fatalf("streamed %v, want %v", addrs, want)
	}
	for i := range want {
		if addrs[i] != want[i] {
			t.Errorf("verse %d addr = %q, want %q", i, addrs[i], want[i])
		}
	}
}

func TestPassageSocketBadCitation(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/passage?cite=frobnitz"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	var msg streamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if msg.Type != "error" || msg.Error == "" {
		t.Errorf("message = %+v, want error frame", msg)
	}
}
