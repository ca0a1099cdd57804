package controller

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coachsite-be/internal/dto"
	"coachsite-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type fakeChatService struct {
	called    bool
	fragments []string
}

func (f *fakeChatService) Chat(ctx context.Context, userId string, req *dto.ChatRequest) (<-chan llm.StreamChunk, error) {
	f.called = true
	out := make(chan llm.StreamChunk, len(f.fragments))
	for _, fragment := range f.fragments {
		out <- llm.StreamChunk{Text: fragment}
	}
	close(out)
	return out, nil
}

func newChatTestApp(svc *fakeChatService) *fiber.App {
	app := fiber.New()
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func signToken(t *testing.T, secret string, roles []string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"roles":   roles,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestChatWithoutTokenIsUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeChatService{}
	app := newChatTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if svc.called {
		t.Error("generation must not run for unauthenticated requests")
	}
}

func TestChatWithoutMemberRoleIsForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeChatService{}
	app := newChatTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", []string{"public"}))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	if svc.called {
		t.Error("generation must not run without the member role")
	}
}

func TestChatStreamsEventFrames(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeChatService{fragments: []string{"Hello", " there"}}
	app := newChatTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", []string{"member"}))

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(body)

	if !strings.Contains(text, `data: {"text":"Hello"}`) {
		t.Errorf("body missing first frame:\n%s", text)
	}
	if !strings.Contains(text, `data: {"text":" there"}`) {
		t.Errorf("body missing second frame:\n%s", text)
	}
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), "data: [DONE]") {
		t.Errorf("stream must end with the done marker:\n%s", text)
	}
}

// endlessChatService produces fragments forever using the same select-send
// pattern as the generation provider, so it only stops when the stream
// context is cancelled.
type endlessChatService struct {
	cancelled chan struct{}
}

func (f *endlessChatService) Chat(ctx context.Context, userId string, req *dto.ChatRequest) (<-chan llm.StreamChunk, error) {
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for {
			select {
			case out <- llm.StreamChunk{Text: "fragment"}:
			case <-ctx.Done():
				close(f.cancelled)
				return
			}
		}
	}()
	return out, nil
}

func TestChatCancelsGenerationWhenClientDisconnects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &endlessChatService{cancelled: make(chan struct{})}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	NewChatController(svc).RegisterRoutes(app.Group("/api"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	defer app.Shutdown()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	body := `{"message":"hi"}`
	token := signToken(t, "test-secret", []string{"member"})
	fmt.Fprintf(conn,
		"POST /api/chat/v1 HTTP/1.1\r\nHost: %s\r\nContent-Type: application/json\r\nAuthorization: Bearer %s\r\nContent-Length: %d\r\n\r\n%s",
		ln.Addr().String(), token, len(body), body)

	// Read the start of the stream, then drop the connection mid-stream.
	buf := make([]byte, 1024)
	if _, err := conn.Read(buf); err != nil {
		t.Fatalf("read first frames: %v", err)
	}
	conn.Close()

	select {
	case <-svc.cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("generation context was not cancelled after client disconnect")
	}
}
