package controller

import (
	"errors"
	"io"
	"strings"

	"yuktadhara-be/internal/dto"
	"yuktadhara-be/internal/entity"
	"yuktadhara-be/internal/pkg/serverutils"
	"yuktadhara-be/internal/service"
	internalWS "yuktadhara-be/internal/websocket"
	"yuktadhara-be/pkg/catalog"
	"yuktadhara-be/pkg/geoai"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type IPlannerController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SetSiteName(ctx *fiber.Ctx) error
	ListLayers(ctx *fiber.Ctx) error
	UploadLayerImage(ctx *fiber.Ctx) error
	ClearLayerImage(ctx *fiber.Ctx) error
	RunAnalysis(ctx *fiber.Ctx) error
	ListWorks(ctx *fiber.Ctx) error
	SelectWork(ctx *fiber.Ctx) error
	ClearSelection(ctx *fiber.Ctx) error
	GetSelection(ctx *fiber.Ctx) error
	ExportReport(ctx *fiber.Ctx) error
	GetCatalog(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type plannerController struct {
	service service.IPlannerService
	cat     *catalog.Catalog
	hub     *internalWS.Hub
}

func NewPlannerController(service service.IPlannerService, cat *catalog.Catalog, hub *internalWS.Hub) IPlannerController {
	return &plannerController{service: service, cat: cat, hub: hub}
}

func (c *plannerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/planner")
	h.Get("/catalog", c.GetCatalog)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Put("/sessions/:id/site-name", c.SetSiteName)
	h.Get("/sessions/:id/layers", c.ListLayers)
	h.Put("/sessions/:id/layers/:layerId", c.UploadLayerImage)
	h.Delete("/sessions/:id/layers/:layerId", c.ClearLayerImage)
	h.Post("/sessions/:id/analysis", c.RunAnalysis)
	h.Get("/sessions/:id/works", c.ListWorks)
	h.Put("/sessions/:id/selection", c.SelectWork)
	h.Get("/sessions/:id/selection", c.GetSelection)
	h.Delete("/sessions/:id/selection", c.ClearSelection)
	h.Post("/sessions/:id/report", c.ExportReport)
	h.Get("/ws/:id", c.ServeWs)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entity.ErrUnknownLayer):
		return fiber.StatusNotFound
	case errors.Is(err, entity.ErrAnalysisBusy):
		return fiber.StatusConflict
	case errors.Is(err, geoai.ErrMissingCredential):
		return fiber.StatusPreconditionFailed
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(ctx *fiber.Ctx, err error) error {
	code := statusFor(err)
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
}

func (c *plannerController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	// body is optional; the site name falls back to a default
	_ = ctx.BodyParser(&req)

	res, err := c.service.CreateSession(ctx.Context(), &req)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *plannerController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *plannerController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.service.DeleteSession(ctx.Context(), ctx.Params("id")); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *plannerController) SetSiteName(ctx *fiber.Ctx) error {
	var req dto.SetSiteNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "site_name is required"))
	}

	if err := c.service.SetSiteName(ctx.Context(), ctx.Params("id"), req.SiteName); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *plannerController) ListLayers(ctx *fiber.Ctx) error {
	var (
		res interface{}
		err error
	)
	if ctx.QueryBool("bound", false) {
		res, err = c.service.ListBoundLayers(ctx.Context(), ctx.Params("id"))
	} else {
		res, err = c.service.ListLayers(ctx.Context(), ctx.Params("id"))
	}
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *plannerController) UploadLayerImage(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "multipart field 'image' is required"))
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return ctx.Status(fiber.StatusUnsupportedMediaType).JSON(serverutils.ErrorResponse(415, "only image uploads are accepted"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(ctx, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fail(ctx, err)
	}

	if err := c.service.SetLayerFile(ctx.Context(), ctx.Params("id"), ctx.Params("layerId"), data, mimeType); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusAccepted)
}

func (c *plannerController) ClearLayerImage(ctx *fiber.Ctx) error {
	if err := c.service.ClearLayer(ctx.Context(), ctx.Params("id"), ctx.Params("layerId")); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *plannerController) RunAnalysis(ctx *fiber.Ctx) error {
	res, err := c.service.RunAnalysis(ctx.Context(), ctx.Params("id"))
	if err != nil {
		if errors.Is(err, geoai.ErrMissingCredential) {
			// hard stop with guidance, no fallback for this case
			return ctx.Status(fiber.StatusPreconditionFailed).JSON(serverutils.ErrorResponse(
				fiber.StatusPreconditionFailed,
				"analysis credential is not configured; set GOOGLE_GEMINI_API_KEY and restart",
			))
		}
		return fail(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *plannerController) ListWorks(ctx *fiber.Ctx) error {
	res, err := c.service.ListWorks(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *plannerController) SelectWork(ctx *fiber.Ctx) error {
	var req dto.SelectWorkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "work_id is required"))
	}

	res, err := c.service.SelectWork(ctx.Context(), ctx.Params("id"), req.WorkId)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *plannerController) GetSelection(ctx *fiber.Ctx) error {
	res, err := c.service.CurrentSelection(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *plannerController) ClearSelection(ctx *fiber.Ctx) error {
	if err := c.service.ClearSelection(ctx.Context(), ctx.Params("id")); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *plannerController) ExportReport(ctx *fiber.Ctx) error {
	res, err := c.service.ExportReport(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusAccepted).JSON(res)
}

func (c *plannerController) GetCatalog(ctx *fiber.Ctx) error {
	return ctx.JSON(c.cat.All())
}

// ServeWs upgrades the connection and attaches it to the session's event feed.
func (c *plannerController) ServeWs(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(c.hub, conn, sessionID)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
