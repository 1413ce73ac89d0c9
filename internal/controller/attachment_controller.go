package controller

import (
	"ai-agenthub-be/internal/pkg/serverutils"
	"ai-agenthub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type attachmentController struct {
	attachmentService service.IAttachmentService
}

func NewAttachmentController(attachmentService service.IAttachmentService) IAttachmentController {
	return &attachmentController{
		attachmentService: attachmentService,
	}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/project/v1/:projectId/attachments")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.Index)
	h.Get(":id", c.Download)
	h.Delete(":id", c.Delete)
}

func (c *attachmentController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid project ID"))
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "File is required"))
	}

	res, err := c.attachmentService.Upload(ctx.Context(), userId, projectId, file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Attachment uploaded successfully", res))
}

func (c *attachmentController) Index(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid project ID"))
	}

	res, err := c.attachmentService.GetAll(ctx.Context(), userId, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Project attachments", res))
}

func (c *attachmentController) Download(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid project ID"))
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid attachment ID"))
	}

	path, meta, err := c.attachmentService.ResolvePath(ctx.Context(), userId, projectId, id)
	if err != nil {
		return err
	}

	return ctx.Download(path, meta.OriginalName)
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid project ID"))
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid attachment ID"))
	}

	if err := c.attachmentService.Delete(ctx.Context(), userId, projectId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Attachment deleted", nil))
}
