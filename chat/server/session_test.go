package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ryuvi/carchat/chat/catalog"
	"github.com/ryuvi/carchat/chat/dialogue"
	"github.com/ryuvi/carchat/chat/wire"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Car{
		{Marca: "Toyota", Modelo: "Corolla", Preco: 55000, Cor: "Preto", Combustivel: "Flex", Transmissao: "Automática"},
		{Marca: "Fiat", Modelo: "Uno", Preco: 25000, Cor: "Branco", Combustivel: "Gasolina", Transmissao: "Manual"},
	})
}

// startSession runs a Session over a real websocket pair and returns the
// client end plus the channel carrying Run's result.
func startSession(t *testing.T, ctx context.Context, pollInterval time.Duration) (*websocket.Conn, chan error) {
	t.Helper()

	done := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			done <- err
			return
		}
		cat := testCatalog()
		session := NewSession(conn, dialogue.NewConversation(cat, cat), pollInterval)
		done <- session.Run(ctx)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	dialCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close(websocket.StatusNormalClosure, "") })

	return client, done
}

func roundTrip(t *testing.T, client *websocket.Conn, req wire.Request) wire.Reply {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, client, req); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply wire.Reply
	if err := wsjson.Read(ctx, client, &reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	return reply
}

func TestSessionLockstepTurns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client, _ := startSession(t, ctx, 10*time.Millisecond)

	welcome := roundTrip(t, client, wire.Request{Message: "oi"})
	if welcome.Message == "" || len(welcome.Suggestions) == 0 {
		t.Fatalf("welcome reply = %+v", welcome)
	}

	brand := roundTrip(t, client, wire.Request{Message: "Toyota"})
	if len(brand.Suggestions) == 0 || brand.Suggestions[0] != "Corolla" {
		t.Fatalf("brand reply suggestions = %v", brand.Suggestions)
	}
}

func TestSessionResetDirective(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client, _ := startSession(t, ctx, 10*time.Millisecond)

	roundTrip(t, client, wire.Request{Message: "oi"})
	roundTrip(t, client, wire.Request{Message: "Toyota"})

	ack := roundTrip(t, client, wire.Request{Action: wire.ActionReset})
	if !ack.Reset {
		t.Fatalf("reset ack = %+v, want Reset flag", ack)
	}

	// After reset the machine is back at the start: any text produces the
	// welcome prompt with brand suggestions again.
	welcome := roundTrip(t, client, wire.Request{Message: "oi de novo"})
	if len(welcome.Suggestions) == 0 || welcome.Suggestions[0] != "Fiat" {
		t.Fatalf("post-reset suggestions = %v", welcome.Suggestions)
	}
}

func TestSessionObservesShutdownWhileIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client, done := startSession(t, ctx, 10*time.Millisecond)
	_ = client

	// No request is pending; cancelling must end the loop within a few
	// poll intervals, not block on a receive.
	cancel()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("session did not observe shutdown while idle")
	}
}
