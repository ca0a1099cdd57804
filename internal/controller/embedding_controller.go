package controller

import (
	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/serverutils"
	"coachsite-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEmbeddingController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type embeddingController struct {
	ingestionService service.IIngestionService
}

func NewEmbeddingController(ingestionService service.IIngestionService) IEmbeddingController {
	return &embeddingController{
		ingestionService: ingestionService,
	}
}

func (c *embeddingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/embeddings/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRoles("admin"))
	h.Post("generate", c.Generate)
	h.Post("refresh", c.Refresh)
	h.Get("status", c.Status)
}

// Generate runs ingestion for a single document synchronously. The async
// path through the queue covers uploads; this endpoint exists for manual
// reprocessing.
func (c *embeddingController) Generate(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.IngestDocument(ctx.Context(), req.DocumentId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *embeddingController) Refresh(ctx *fiber.Ctx) error {
	res, err := c.ingestionService.RefreshAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *embeddingController) Status(ctx *fiber.Ctx) error {
	res, err := c.ingestionService.Status(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
