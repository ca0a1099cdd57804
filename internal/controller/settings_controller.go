package controller

import (
	"coachsite-be/internal/dto"
	"coachsite-be/internal/pkg/serverutils"
	"coachsite-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type settingsController struct {
	settingsService service.ISettingsService
}

func NewSettingsController(settingsService service.ISettingsService) ISettingsController {
	return &settingsController{
		settingsService: settingsService,
	}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Get("", c.Get)
	h.Put("", serverutils.JwtMiddleware, serverutils.RequireRoles("admin"), c.Update)
}

// Get is public: the landing page needs the coach name, welcome message and
// suggested questions before any login.
func (c *settingsController) Get(ctx *fiber.Ctx) error {
	settings, err := c.settingsService.Get(ctx.Context())
	if err != nil {
		return err
	}

	res := dto.SettingsResponse{
		SiteTitle:          settings.SiteTitle,
		SiteDescription:    settings.SiteDescription,
		CoachName:          settings.CoachName,
		ContactEmail:       settings.ContactEmail,
		WelcomeMessage:     settings.WelcomeMessage,
		SuggestedQuestions: settings.SuggestedQuestions,
		MembershipPrice:    settings.MembershipPrice,
	}
	return ctx.JSON(serverutils.SuccessResponse("Site settings", res))
}

func (c *settingsController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.settingsService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings updated", res))
}
