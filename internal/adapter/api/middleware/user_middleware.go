package middleware

import (
	"github.com/labstack/echo/v4"

	"sharesphere/internal/infrastructure/firebase"
	"sharesphere/internal/usecase"
	"sharesphere/pkg/errors"
	"sharesphere/pkg/response"
)

type UserMiddleware struct {
	userUseCase *usecase.UserUseCase
}

func NewUserMiddleware(userUseCase *usecase.UserUseCase) *UserMiddleware {
	return &UserMiddleware{
		userUseCase: userUseCase,
	}
}

// AttachUser resolves the verified identity to a local user record,
// auto-provisioning it on first sight, and stores it on the context.
func (m *UserMiddleware) AttachUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := c.Get("identity").(*firebase.Identity)
		if !ok || identity.SubjectID == "" {
			return response.Error(c, errors.Unauthorized("No subject id found in token", nil))
		}

		user, err := m.userUseCase.ResolveIdentity(c.Request().Context(), usecase.ResolveIdentityInput{
			SubjectID: identity.SubjectID,
			Email:     identity.Email,
			Name:      identity.Name,
			Picture:   identity.Picture,
		})
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("dbUser", user)

		return next(c)
	}
}
