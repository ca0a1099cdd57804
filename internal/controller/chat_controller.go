package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/serverutils"
	"coachsite-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles("member", "admin"))
	h.Post("", c.Chat)
}

// Chat streams the assistant's answer as server-sent events. Every frame is
// a JSON object with a text fragment; the stream ends with a [DONE] marker.
// Errors that occur before the first byte map to normal status codes.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := serverutils.UserId(ctx)

	// fasthttp's request context is only cancelled on server shutdown, so a
	// client disconnect would leave the generation goroutine blocked on its
	// send forever. Derive a cancellable context and tear it down when the
	// stream writer exits for any reason.
	streamCtx, cancel := context.WithCancel(ctx.Context())

	chunks, err := c.chatService.Chat(streamCtx, userId, &req)
	if err != nil {
		cancel()
		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.LimitExceededResponse{
				Success:   false,
				Code:      fiber.StatusTooManyRequests,
				Message:   "Daily message limit reached",
				ErrorType: "limit_exceeded",
				Data: dto.LimitExceededData{
					Limit:      limitErr.Limit,
					Used:       limitErr.Used,
					ResetAfter: limitErr.ResetAfter,
				},
			})
		}
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for chunk := range chunks {
			if chunk.Err != nil {
				// Terminate without the done marker; the client treats an
				// interrupted stream as a failed generation.
				return
			}
			frame, err := json.Marshal(dto.StreamFrame{Text: chunk.Text})
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", frame)
			if err := w.Flush(); err != nil {
				return
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}
