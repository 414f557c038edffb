package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/ratelimit"
	"github.com/mmynk/dinesplit/internal/token"
)

// echoMenu reports the session ID it sees as the name of a single item.
type echoMenu struct{}

func (echoMenu) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	return connect.NewResponse(&api.ListMenuResponse{
		Items: []api.MenuItem{{ID: "echo", Name: GetSessionID(ctx)}},
	}), nil
}

func setupTestServer(t *testing.T, interceptors ...connect.Interceptor) (*api.MenuServiceClient, func()) {
	t.Helper()

	mux := http.NewServeMux()
	mux.Handle(api.NewMenuServiceHandler(echoMenu{}, connect.WithInterceptors(interceptors...)))
	server := httptest.NewServer(mux)

	return api.NewMenuServiceClient(http.DefaultClient, server.URL), server.Close
}

func listMenu(client *api.MenuServiceClient, authHeader string) (string, error) {
	req := connect.NewRequest(&api.ListMenuRequest{})
	if authHeader != "" {
		req.Header().Set("Authorization", authHeader)
	}
	resp, err := client.ListMenu(context.Background(), req)
	if err != nil {
		return "", err
	}
	return resp.Msg.Items[0].Name, nil
}

func codeOf(err error) connect.Code {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code()
	}
	return connect.CodeUnknown
}

func TestRequireSession(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	client, cleanup := setupTestServer(t, RequireSession(tokens), LoggingInterceptor())
	defer cleanup()

	good, err := tokens.Generate("session-42")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	foreign, err := token.NewManager("other-secret", time.Hour).Generate("session-42")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantID   string
	}{
		{name: "valid token", header: "Bearer " + good, wantID: "session-42"},
		{name: "missing header", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic " + good, wantCode: connect.CodeUnauthenticated},
		{name: "no token", header: "Bearer", wantCode: connect.CodeUnauthenticated},
		{name: "foreign signature", header: "Bearer " + foreign, wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := listMenu(client, tt.header)
			if tt.wantCode != 0 {
				if got := codeOf(err); got != tt.wantCode {
					t.Errorf("expected %v, got %v (%v)", tt.wantCode, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListMenu failed: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("session ID in context = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestRequireSession_PublicProcedure(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	client, cleanup := setupTestServer(t, RequireSession(tokens, api.MenuServiceListMenuProcedure))
	defer cleanup()

	id, err := listMenu(client, "")
	if err != nil {
		t.Fatalf("public procedure rejected: %v", err)
	}
	if id != "" {
		t.Errorf("expected no session ID, got %q", id)
	}
}

func TestOptionalSession(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	client, cleanup := setupTestServer(t, OptionalSession(tokens))
	defer cleanup()

	good, err := tokens.Generate("session-7")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if id, err := listMenu(client, "Bearer "+good); err != nil || id != "session-7" {
		t.Errorf("with token: id %q err %v, want session-7", id, err)
	}
	if id, err := listMenu(client, ""); err != nil || id != "" {
		t.Errorf("without token: id %q err %v, want empty", id, err)
	}
	if id, err := listMenu(client, "Bearer junk"); err != nil || id != "" {
		t.Errorf("with bad token: id %q err %v, want empty", id, err)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.PerMinute(1), 2)
	client, cleanup := setupTestServer(t, RateLimit(limiter))
	defer cleanup()

	for i := 0; i < 2; i++ {
		if _, err := listMenu(client, ""); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}

	_, err := listMenu(client, "")
	if got := codeOf(err); got != connect.CodeResourceExhausted {
		t.Errorf("expected ResourceExhausted, got %v (%v)", got, err)
	}
	if limiter.Len() != 1 {
		t.Errorf("expected one peer bucket, got %d", limiter.Len())
	}
}

func TestPeerKey(t *testing.T) {
	tests := map[string]string{
		"127.0.0.1:54321": "127.0.0.1",
		"[::1]:8080":      "::1",
		"unix-socket":     "unix-socket",
	}
	for in, want := range tests {
		if got := peerKey(in); got != want {
			t.Errorf("peerKey(%q) = %q, want %q", in, got, want)
		}
	}
}
