package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/catalog"
	"github.com/mmynk/dinesplit/internal/metrics"
	"github.com/mmynk/dinesplit/internal/middleware"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/storage/sqlite"
	"github.com/mmynk/dinesplit/internal/token"
)

// testClock is a settable clock shared by the services and the test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testServer struct {
	menu   *api.MenuServiceClient
	order  *api.OrderServiceClient
	split  *api.SplitServiceClient
	store  storage.Store
	tokens *token.Manager
	clock  *testClock
}

// setupTestServer creates a test server with an in-memory SQLite database
func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	store, err := sqlite.New(sqlite.MemoryDSN)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	clock := &testClock{now: time.Now()}
	tokens := token.NewManager("test-secret", 24*time.Hour)
	opts := Options{MaxParticipants: 20, TTL: time.Hour, Now: clock.Now}
	m := metrics.New()
	menu := catalog.Default()

	interceptors := connect.WithInterceptors(
		middleware.RequireSession(tokens, api.OrderServiceStartSessionProcedure, api.MenuServiceListMenuProcedure),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewMenuServiceHandler(NewMenuService(menu), interceptors))
	mux.Handle(api.NewOrderServiceHandler(NewOrderService(store, menu, tokens, m, opts), interceptors))
	mux.Handle(api.NewSplitServiceHandler(NewSplitService(store, m, opts), interceptors))

	server := httptest.NewServer(mux)

	ts := &testServer{
		menu:   api.NewMenuServiceClient(http.DefaultClient, server.URL),
		order:  api.NewOrderServiceClient(http.DefaultClient, server.URL),
		split:  api.NewSplitServiceClient(http.DefaultClient, server.URL),
		store:  store,
		tokens: tokens,
		clock:  clock,
	}

	cleanup := func() {
		server.Close()
		store.Close()
	}

	return ts, cleanup
}

// withToken wraps msg in a request carrying the session token.
func withToken[T any](tok string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+tok)
	return req
}

func startSession(t *testing.T, ts *testServer) string {
	t.Helper()
	resp, err := ts.order.StartSession(context.Background(), connect.NewRequest(&api.EmptyRequest{}))
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	return resp.Msg.Token
}

func addItem(t *testing.T, ts *testServer, tok, id string) *api.OrderResponse {
	t.Helper()
	resp, err := ts.order.AddItem(context.Background(), withToken(tok, &api.AddItemRequest{MenuItemID: id}))
	if err != nil {
		t.Fatalf("AddItem(%s) failed: %v", id, err)
	}
	return resp.Msg
}

func wantNotifications(t *testing.T, got []api.Notification, want ...api.Notification) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != code {
		t.Errorf("expected code %v, got %v (%v)", code, connectErr.Code(), err)
	}
}
