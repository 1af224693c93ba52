package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type (
	createUserHandler interface {
		Handle(ctx context.Context, cmd commands.CreateUserCommand) (user.Principal, error)
	}
	refreshPrincipalHandler interface {
		Handle(ctx context.Context, cmd commands.RefreshPrincipalCommand) (user.Principal, error)
	}
	updateProfileHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateProfileCommand) (user.Principal, error)
	}
	createCargoHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCargoCommand) error
	}
	editCargoHandler interface {
		Handle(ctx context.Context, cmd commands.EditCargoCommand) error
	}
	removeCargoHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveCargoCommand) error
	}
	cancelCargoHandler interface {
		Handle(ctx context.Context, cmd commands.CancelCargoCommand) error
	}
	takeCargoHandler interface {
		Handle(ctx context.Context, cmd commands.TakeCargoCommand) error
	}
	deliverCargoHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverCargoCommand) error
	}
	failCargoHandler interface {
		Handle(ctx context.Context, cmd commands.FailCargoCommand) error
	}
	listOwnCargoHandler interface {
		Handle(ctx context.Context, query queries.ListOwnCargoQuery) (queries.CargoPage, error)
	}
	listAllCargoHandler interface {
		Handle(ctx context.Context, query queries.ListAllCargoQuery) (queries.CargoPage, error)
	}

	tokenManager interface {
		tokenParser
		Issue(principal user.Principal) (string, time.Time, error)
	}

	// Pinger reports whether the store answers. *sql.DB satisfies it.
	Pinger interface {
		PingContext(ctx context.Context) error
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateUser       createUserHandler
	RefreshPrincipal refreshPrincipalHandler
	UpdateProfile    updateProfileHandler
	CreateCargo      createCargoHandler
	EditCargo        editCargoHandler
	RemoveCargo      removeCargoHandler
	CancelCargo      cancelCargoHandler
	TakeCargo        takeCargoHandler
	DeliverCargo     deliverCargoHandler
	FailCargo        failCargoHandler
	ListOwnCargo     listOwnCargoHandler
	ListAllCargo     listAllCargoHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	tokens   tokenManager
	store    Pinger
	openAPI  routers.Router
	logger   *slog.Logger
}

// NewServer fails only when the embedded API description cannot be loaded.
func NewServer(handlers Handlers, tokens tokenManager, store Pinger, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	openAPI, err := loadOpenAPIRouter()
	if err != nil {
		return nil, err
	}

	return &Server{
		handlers: handlers,
		tokens:   tokens,
		store:    store,
		openAPI:  openAPI,
		logger:   logger.With("component", "http"),
	}, nil
}

// NewEcho builds the echo instance with middleware, error handling and routes.
// requestTimeout bounds the context every handler runs with.
func (s *Server) NewEcho(requestTimeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newErrorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.CORS())
	if requestTimeout > 0 {
		e.Use(middleware.ContextTimeout(requestTimeout))
	}

	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	validate := validateRequest(s.openAPI)

	api := e.Group("/api/v1")
	api.GET("/openapi.yaml", s.OpenAPI)
	api.POST("/users", s.Register, validate)

	auth := authenticate(s.tokens)
	api.POST("/auth/refresh", s.Refresh, auth)
	api.PUT("/users/me", s.UpdateProfile, auth, validate)

	distributor := api.Group("/distributor/cargoes", auth, requireRole(user.RoleDistributor), validate)
	distributor.POST("", s.CreateCargo)
	distributor.GET("", s.ListOwnCargo)
	distributor.PUT("/:id", s.EditCargo)
	distributor.DELETE("/:id", s.RemoveCargo)
	distributor.POST("/:id/cancel", s.CancelCargo)

	driver := api.Group("/driver/cargoes", auth, requireRole(user.RoleDriver), validate)
	driver.GET("", s.ListOwnCargo)
	driver.GET("/all", s.ListAllCargo)
	driver.POST("/:id/take", s.TakeCargo)
	driver.POST("/:id/deliver", s.DeliverCargo)
	driver.POST("/:id/fail", s.FailCargo)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.store != nil {
		if err := s.store.PingContext(c.Request().Context()); err != nil {
			return errs.NewUnavailableError("ping store", err)
		}
	}
	return c.String(http.StatusOK, "Healthy")
}

// Register handles POST /api/v1/users and answers with a token for the new user.
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), req.Username, req.PhoneNumber, role, req.profile(role))
	if err != nil {
		return err
	}

	principal, err := s.handlers.CreateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithToken(c, http.StatusCreated, principal)
}

// Refresh handles POST /api/v1/auth/refresh.
func (s *Server) Refresh(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRefreshPrincipalCommand(principal)
	if err != nil {
		return err
	}

	current, err := s.handlers.RefreshPrincipal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithToken(c, http.StatusOK, current)
}

// UpdateProfile handles PUT /api/v1/users/me. The answer carries a fresh token
// for the same principal.
func (s *Server) UpdateProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	profile, err := req.profile()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProfileCommand(principal, req.Username, req.PhoneNumber, profile)
	if err != nil {
		return err
	}

	current, err := s.handlers.UpdateProfile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithToken(c, http.StatusOK, current)
}

func (s *Server) respondWithToken(c echo.Context, status int, principal user.Principal) error {
	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return err
	}

	return c.JSON(status, TokenResponse{
		UserID:    principal.ID.String(),
		Role:      string(principal.Role),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// CreateCargo handles POST /api/v1/distributor/cargoes.
func (s *Server) CreateCargo(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	details, err := bindCargoDetails(c)
	if err != nil {
		return err
	}

	cargoID := kernel.NewUUID()
	cmd, err := commands.NewCreateCargoCommand(principal, cargoID, details)
	if err != nil {
		return err
	}

	if err := s.handlers.CreateCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cargoID.String()})
}

// EditCargo handles PUT /api/v1/distributor/cargoes/:id.
func (s *Server) EditCargo(c echo.Context) error {
	principal, cargoID, err := callerAndCargo(c)
	if err != nil {
		return err
	}

	details, err := bindCargoDetails(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewEditCargoCommand(principal, cargoID, details)
	if err != nil {
		return err
	}

	if err := s.handlers.EditCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveCargo handles DELETE /api/v1/distributor/cargoes/:id.
func (s *Server) RemoveCargo(c echo.Context) error {
	principal, cargoID, err := callerAndCargo(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveCargoCommand(principal, cargoID)
	if err != nil {
		return err
	}

	if err := s.handlers.RemoveCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelCargo handles POST /api/v1/distributor/cargoes/:id/cancel.
func (s *Server) CancelCargo(c echo.Context) error {
	principal, cargoID, err := callerAndCargo(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelCargoCommand(principal, cargoID)
	if err != nil {
		return err
	}

	if err := s.handlers.CancelCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// TakeCargo handles POST /api/v1/driver/cargoes/:id/take. The verification
// code is never part of the answer.
func (s *Server) TakeCargo(c echo.Context) error {
	principal, cargoID, err := callerAndCargo(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTakeCargoCommand(principal, cargoID)
	if err != nil {
		return err
	}

	if err := s.handlers.TakeCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeliverCargo handles POST /api/v1/driver/cargoes/:id/deliver.
func (s *Server) DeliverCargo(c echo.Context) error {
	principal, cargoID, err := callerAndCargo(c)
	if err != nil {
		return err
	}

	var req DeliverRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	cmd, err := commands.NewDeliverCargoCommand(principal, cargoID, req.Code)
	if err != nil {
		return err
	}

	if err := s.handlers.DeliverCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// FailCargo handles POST /api/v1/driver/cargoes/:id/fail.
func (s *Server) FailCargo(c echo.Context) error {
	principal, cargoID, err := callerAndCargo(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewFailCargoCommand(principal, cargoID)
	if err != nil {
		return err
	}

	if err := s.handlers.FailCargo.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListOwnCargo serves both GET /api/v1/distributor/cargoes and
// GET /api/v1/driver/cargoes; the principal's role picks the filter.
func (s *Server) ListOwnCargo(c echo.Context) error {
	principal, pagination, err := callerAndPagination(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListOwnCargoQuery(principal, pagination)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListOwnCargo.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCargoPageResponse(page))
}

// ListAllCargo handles GET /api/v1/driver/cargoes/all.
func (s *Server) ListAllCargo(c echo.Context) error {
	principal, pagination, err := callerAndPagination(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAllCargoQuery(principal, pagination)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListAllCargo.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCargoPageResponse(page))
}

func bindCargoDetails(c echo.Context) (cargo.Details, error) {
	var req CargoRequest
	if err := c.Bind(&req); err != nil {
		return cargo.Details{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return req.toDetails()
}

func callerAndCargo(c echo.Context) (user.Principal, kernel.UUID, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return user.Principal{}, kernel.UUID{}, err
	}

	cargoID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return user.Principal{}, kernel.UUID{}, err
	}

	return principal, cargoID, nil
}

func callerAndPagination(c echo.Context) (user.Principal, queries.Pagination, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return user.Principal{}, queries.Pagination{}, err
	}

	page, size, sortBy := queries.DefaultPage, queries.DefaultSize, queries.DefaultSortBy
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("size", &size).
		String("sortBy", &sortBy).
		BindError()
	if err != nil {
		return user.Principal{}, queries.Pagination{}, errs.NewValueIsInvalidErrorWithCause("query", err)
	}

	pagination, err := queries.NewPagination(page, size, sortBy)
	if err != nil {
		return user.Principal{}, queries.Pagination{}, err
	}

	return principal, pagination, nil
}
