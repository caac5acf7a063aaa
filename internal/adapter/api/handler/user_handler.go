package handler

import (
	"github.com/labstack/echo/v4"

	"sharesphere/internal/usecase"
	"sharesphere/pkg/errors"
	"sharesphere/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetCredits(c echo.Context) error {
	uid := getUserIDFromContext(c)
	if uid == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	credits, err := h.userUseCase.GetCredits(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"credits": credits,
	})
}

func (h *UserHandler) GetMyUploads(c echo.Context) error {
	uid := getUserIDFromContext(c)
	if uid == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	files, err := h.userUseCase.GetMyUploads(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": len(files),
		"files": files,
	})
}

func (h *UserHandler) GetTransactions(c echo.Context) error {
	uid := getUserIDFromContext(c)
	if uid == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	entries, err := h.userUseCase.GetLedgerHistory(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}
