package handlers

import (
	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/models"
	"github.com/callimard/makemeacube/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) BasicRegistration(c *fiber.Ctx) error {
	var req dto.BasicRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.BasicUserRegistration(&req, models.ProviderLocal)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) MakerRegistration(c *fiber.Ctx) error {
	var req dto.MakerRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.MakerUserRegistration(&req, models.ProviderLocal)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing verification token",
		})
	}

	user, err := h.users.VerifyEmail(token)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := h.users.GetUser(p, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.UpdateUserInformation(p, userID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) AddAddress(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.AddUserAddress(p, userID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateAddress(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	addressID, err := paramID(c, "addressId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.UpdateUserAddress(p, userID, addressID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) DeleteAddress(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	addressID, err := paramID(c, "addressId")
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := h.users.DeleteUserAddress(p, userID, addressID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) AddPrinter3D(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req dto.Printer3DRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.AddPrinter3D(p, userID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdatePrinter3D(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	toolID, err := paramID(c, "toolId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req dto.Printer3DRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.UpdatePrinter3D(p, userID, toolID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) DeleteMakerTool(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	toolID, err := paramID(c, "toolId")
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := h.users.DeleteMakerTool(p, userID, toolID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) GetToolMaterial(c *fiber.Ctx) error {
	p, userID, err := callerAndUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	toolID, err := paramID(c, "toolId")
	if err != nil {
		return respondServiceError(c, err)
	}
	materialID, err := paramID(c, "materialId")
	if err != nil {
		return respondServiceError(c, err)
	}

	material, err := h.users.GetToolMaterial(p, userID, toolID, materialID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.NewMaterialResponse(material))
}

func callerAndUserID(c *fiber.Ctx) (services.Principal, uint, error) {
	p, err := currentPrincipal(c)
	if err != nil {
		return services.Principal{}, 0, err
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return services.Principal{}, 0, err
	}
	return p, userID, nil
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}
