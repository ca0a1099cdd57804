package chatclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	welcomeMessage = "Hello! I'm your AI coaching assistant. I'm trained on proven coaching techniques and I'm here to help you. What would you like to discuss today?"
	errorMessage   = "I'm sorry, I encountered an error. Please try again or contact support if the issue persists."
	doneMarker     = "[DONE]"
)

// ErrBusy is returned by Send while a previous exchange is still in flight.
var ErrBusy = errors.New("chatclient: session busy")

type Message struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type streamFrame struct {
	Text string `json:"text"`
}

// Session drives one conversation against the chat endpoint. All methods are
// safe for concurrent use; Send itself is serialized by the state machine.
type Session struct {
	mu sync.Mutex

	endpoint string
	token    string
	client   *http.Client
	store    HistoryStore

	state           State
	messages        []Message
	showSuggestions bool
	suggestions     []string
}

// NewSession restores history from the store. The welcome message and
// suggested questions only appear when the store is empty; a restored
// conversation keeps its own opening.
func NewSession(endpoint, token string, store HistoryStore, suggestions []string) (*Session, error) {
	s := &Session{
		endpoint:    endpoint,
		token:       token,
		client:      &http.Client{},
		store:       store,
		suggestions: suggestions,
	}

	history, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	if len(history) > 0 {
		s.messages = history
		return s, nil
	}

	s.seed()
	if err := store.Save(s.messages); err != nil {
		return nil, fmt.Errorf("save chat history: %w", err)
	}
	return s, nil
}

func (s *Session) seed() {
	s.messages = []Message{{
		Id:        "1",
		Role:      RoleAssistant,
		Content:   welcomeMessage,
		Timestamp: time.Now(),
	}}
	s.showSuggestions = true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a snapshot of the conversation.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Suggestions returns the suggested questions, or nil once the user has
// started the conversation.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.showSuggestions {
		return nil
	}
	return s.suggestions
}

// Send posts the user's message and streams the assistant's reply into the
// conversation. It blocks until the stream finishes. Any transport or server
// failure lands as a fixed in-conversation error message, never as a
// half-open state.
func (s *Session) Send(ctx context.Context, content string) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateSending
	s.showSuggestions = false
	s.append(Message{
		Id:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.mu.Unlock()

	resp, err := s.post(ctx, content)
	if err != nil {
		s.fail(false)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.fail(false)
		return fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	s.mu.Lock()
	s.state = StateStreaming
	s.append(Message{
		Id:        fmt.Sprintf("%d", time.Now().UnixNano()+1),
		Role:      RoleAssistant,
		Content:   "",
		Timestamp: time.Now(),
	})
	s.mu.Unlock()

	if err := s.consume(resp); err != nil {
		s.fail(true)
		return err
	}

	s.mu.Lock()
	s.state = StateIdle
	s.persist()
	s.mu.Unlock()
	return nil
}

// Reset clears the conversation and its storage and reseeds the welcome.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.seed()
	s.state = StateIdle
	return s.store.Save(s.messages)
}

func (s *Session) post(ctx context.Context, content string) (*http.Response, error) {
	body, err := json.Marshal(chatRequest{Message: content})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	return s.client.Do(req)
}

// consume reads SSE frames and grows the last assistant message in place. A
// stream that ends without the done marker counts as interrupted.
func (s *Session) consume(resp *http.Response) error {
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	done := false
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == doneMarker {
			done = true
			break
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			continue // skip malformed frames
		}

		s.mu.Lock()
		s.messages[len(s.messages)-1].Content += frame.Text
		s.persist()
		s.mu.Unlock()
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	if !done {
		return errors.New("stream interrupted before completion")
	}
	return nil
}

// fail replaces the in-progress assistant message (or appends one) with the
// fixed error text and returns the session to Idle.
func (s *Session) fail(replaceLast bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := len(s.messages) - 1
	if replaceLast && last >= 0 && s.messages[last].Role == RoleAssistant {
		s.messages[last].Content = errorMessage
	} else {
		s.append(Message{
			Id:        fmt.Sprintf("%d", time.Now().UnixNano()),
			Role:      RoleAssistant,
			Content:   errorMessage,
			Timestamp: time.Now(),
		})
	}
	s.state = StateIdle
}

// append and persist assume s.mu is held.
func (s *Session) append(msg Message) {
	s.messages = append(s.messages, msg)
	s.persist()
}

func (s *Session) persist() {
	// Best effort: a failed write loses persistence, not the conversation.
	_ = s.store.Save(s.messages)
}
