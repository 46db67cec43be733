package handler

import (
	"net/http"
	"strconv"

	"github.com/Astemirdum/readinglist-service/internal/errs"
	"github.com/Astemirdum/readinglist-service/internal/model"
	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/Astemirdum/readinglist-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	authSvc    AuthService
	booksSvc   BooksService
	catalogSvc CatalogService
	tokens     *auth.Manager
	log        *zap.Logger
}

func New(authSvc AuthService, booksSvc BooksService, catalogSvc CatalogService, tokens *auth.Manager, log *zap.Logger) *Handler {
	h := &Handler{
		authSvc:    authSvc,
		booksSvc:   booksSvc,
		catalogSvc: catalogSvc,
		tokens:     tokens,
		log:        log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		appRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost},
		AllowCredentials: true,
	}))
	e.Renderer = newRenderer()
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	app := e.Group("",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(appRPS),
	)

	app.GET("/book/:googleBooksId", h.BookDetails)
	app.GET("/search", h.Search)
	app.GET("/signup", h.SignUpForm)
	app.POST("/signup", h.SignUp)
	app.GET("/login", h.LoginForm)
	app.POST("/login", h.Login)
	app.GET("/logout", h.Logout)

	priv := app.Group("", sessionMW(h.tokens))
	priv.GET("/", h.Home)
	priv.POST("/save/:googleBooksId", h.SaveBook)
	priv.POST("/add", h.AddBook)
	priv.GET("/edit/:id", h.EditForm)
	priv.POST("/edit/:id", h.Edit)
	priv.GET("/delete/:id", h.Delete)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := auth.UserID(ctx)

	list, err := h.booksSvc.List(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Books": list,
		"Flash": popFlash(c),
	})
}

func (h *Handler) BookDetails(c echo.Context) error {
	googleBooksID := c.Param("googleBooksId")

	volume, err := h.catalogSvc.FetchByID(c.Request().Context(), googleBooksID)
	if err != nil {
		return c.String(http.StatusNotFound, "Book not found")
	}
	return c.Render(http.StatusOK, "book.html", map[string]interface{}{
		"Title":  volume.Title(),
		"Author": volume.Author(),
		"Volume": volume,
	})
}

func (h *Handler) SaveBook(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := auth.UserID(ctx)
	googleBooksID := c.Param("googleBooksId")

	status := model.Status(c.FormValue("status"))
	if err := h.booksSvc.Save(ctx, userID, googleBooksID, status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	setFlash(c, "Book saved to your reading list!")
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) AddBook(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := auth.UserID(ctx)

	type addRequest struct {
		GoogleBooksID string `form:"google_books_id" validate:"required"`
		Status        string `form:"status"`
	}
	var req addRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.booksSvc.Save(ctx, userID, req.GoogleBooksID, model.Status(req.Status)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) EditForm(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := auth.UserID(ctx)

	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Book not found")
	}

	entry, err := h.booksSvc.GetForEdit(ctx, entryID, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.String(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// metadata is cosmetic here, a failed lookup falls back to defaults
	volume, _ := h.catalogSvc.FetchByID(ctx, entry.GoogleBooksID)
	return c.Render(http.StatusOK, "edit.html", map[string]interface{}{
		"ID":     entry.ID,
		"Status": string(entry.Status),
		"Title":  volume.Title(),
	})
}

func (h *Handler) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := auth.UserID(ctx)

	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Book not found")
	}
	status := c.FormValue("status")
	if status == "" {
		return c.String(http.StatusBadRequest, "status is required")
	}

	if err := h.booksSvc.UpdateStatus(ctx, entryID, userID, model.Status(status)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := auth.UserID(ctx)

	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Book not found")
	}

	if err := h.booksSvc.Delete(ctx, entryID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return c.String(http.StatusBadRequest, "No search query provided.")
	}

	items, err := h.catalogSvc.Search(c.Request().Context(), query)
	if err != nil {
		h.log.Warn("search", zap.String("query", query), zap.Error(err))
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "search.html", map[string]interface{}{
		"Query": query,
		"Books": items,
	})
}
