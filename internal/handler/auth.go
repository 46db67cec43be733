package handler

import (
	"net/http"
	"time"

	"github.com/Astemirdum/readinglist-service/internal/errs"
	"github.com/Astemirdum/readinglist-service/internal/model"
	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func (h *Handler) SignUpForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", nil)
}

func (h *Handler) SignUp(c echo.Context) error {
	var req model.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authSvc.SignUp(c.Request().Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			return c.String(http.StatusConflict, "Username already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authSvc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			return c.String(http.StatusUnauthorized, "Invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:    auth.SessionCookie,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	return c.Redirect(http.StatusFound, "/login")
}
