package chatclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func sseHandler(frames []string, done bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frame := range frames {
			fmt.Fprintf(w, "data: {\"text\": %q}\n\n", frame)
			flusher.Flush()
		}
		if done {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
		}
	}
}

func newTestSession(t *testing.T, endpoint string) *Session {
	t.Helper()
	store := NewFileHistoryStore(filepath.Join(t.TempDir(), "history.json"))
	session, err := NewSession(endpoint, "token", store, []string{"How do I start?"})
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	return session
}

func TestNewSessionSeedsWelcome(t *testing.T) {
	session := newTestSession(t, "http://unused")

	messages := session.Messages()
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want the welcome message only", len(messages))
	}
	if messages[0].Role != RoleAssistant {
		t.Errorf("welcome role = %q, want assistant", messages[0].Role)
	}
	if len(session.Suggestions()) == 0 {
		t.Error("suggestions must show for a fresh conversation")
	}
}

func TestNewSessionRestoresHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	store := NewFileHistoryStore(path)
	if err := store.Save([]Message{
		{Id: "1", Role: RoleUser, Content: "previous question"},
		{Id: "2", Role: RoleAssistant, Content: "previous answer"},
	}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	session, err := NewSession("http://unused", "", store, []string{"Q?"})
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}

	messages := session.Messages()
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want restored history untouched", len(messages))
	}
	if messages[0].Content != "previous question" {
		t.Errorf("messages[0].Content = %q, history order lost", messages[0].Content)
	}
	if session.Suggestions() != nil {
		t.Error("suggestions must not show when history exists")
	}
}

func TestSendStreamsIntoLastMessage(t *testing.T) {
	srv := httptest.NewServer(sseHandler([]string{"Well, ", "start ", "small."}, true))
	defer srv.Close()

	session := newTestSession(t, srv.URL)
	if err := session.Send(context.Background(), "How do I begin?"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	messages := session.Messages()
	if len(messages) != 3 { // welcome, user, assistant
		t.Fatalf("len(messages) = %d, want 3", len(messages))
	}
	if messages[1].Role != RoleUser || messages[1].Content != "How do I begin?" {
		t.Errorf("messages[1] = %+v, want the user turn", messages[1])
	}
	last := messages[2]
	if last.Role != RoleAssistant || last.Content != "Well, start small." {
		t.Errorf("assistant content = %q, fragments must accumulate in place", last.Content)
	}
	if session.State() != StateIdle {
		t.Errorf("state = %v, want Idle after completion", session.State())
	}
	if session.Suggestions() != nil {
		t.Error("suggestions must disappear after the first send")
	}
}

func TestSendInterruptedStreamShowsErrorMessage(t *testing.T) {
	srv := httptest.NewServer(sseHandler([]string{"partial"}, false)) // no [DONE]
	defer srv.Close()

	session := newTestSession(t, srv.URL)
	if err := session.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for interrupted stream")
	}

	messages := session.Messages()
	last := messages[len(messages)-1]
	if last.Role != RoleAssistant {
		t.Fatalf("last message role = %q, want assistant", last.Role)
	}
	if last.Content != errorMessage {
		t.Errorf("last content = %q, want the fixed error text", last.Content)
	}
	for _, m := range messages {
		if m.Role == RoleAssistant && m.Content == "" {
			t.Error("no empty assistant placeholder may survive a failure")
		}
	}
	if session.State() != StateIdle {
		t.Errorf("state = %v, want Idle after failure", session.State())
	}
}

func TestSendServerErrorAppendsErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	session := newTestSession(t, srv.URL)
	if err := session.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 503 response")
	}

	messages := session.Messages()
	last := messages[len(messages)-1]
	if last.Content != errorMessage {
		t.Errorf("last content = %q, want the fixed error text", last.Content)
	}
}

func TestResetClearsAndReseeds(t *testing.T) {
	srv := httptest.NewServer(sseHandler([]string{"answer"}, true))
	defer srv.Close()

	dir := t.TempDir()
	store := NewFileHistoryStore(filepath.Join(dir, "history.json"))
	session, err := NewSession(srv.URL, "", store, []string{"Q?"})
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}

	if err := session.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if err := session.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	messages := session.Messages()
	if len(messages) != 1 || messages[0].Content != welcomeMessage {
		t.Errorf("after reset messages = %+v, want the welcome seed only", messages)
	}
	if len(session.Suggestions()) == 0 {
		t.Error("suggestions must reappear after reset")
	}

	restored, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(restored) != 1 {
		t.Errorf("persisted history after reset = %d messages, want 1", len(restored))
	}
}
