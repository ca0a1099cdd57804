package controller

import (
	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/serverutils"
	"coachsite-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type contactController struct {
	contactService service.IContactService
}

func NewContactController(contactService service.IContactService) IContactController {
	return &contactController{
		contactService: contactService,
	}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/contact/v1")
	h.Post("", c.Send)
}

func (c *contactController) Send(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.contactService.Send(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Message sent", nil))
}
