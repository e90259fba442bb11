package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapp/internal/auth"
	"blogapp/internal/config"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/handler"
	"blogapp/internal/logger"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logger.Logger,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
) {
	// HTML forms can only POST; _method carries PUT and DELETE.
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(apperrors.Mapper{HideMissingPosts: cfg.Blog.HideMissingPosts}, log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", authHandler.Dashboard)
	e.GET("/login", authHandler.LoginPage)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Secured routes (require a session cookie resolving to an existing user).
	// Attached per route: a root-level group would also catch unknown paths.
	requireAuth := authenticate(gate, log)

	e.GET("/blog", handler.WithUser(blogHandler.NewPage), requireAuth)
	e.POST("/blog", handler.WithUser(blogHandler.Create), requireAuth)
	e.GET("/viewBlog", handler.WithUser(blogHandler.List), requireAuth)
	e.GET("/edit/:id", handler.WithUser(blogHandler.EditPage), requireAuth)
	e.PUT("/viewBlog/:id", handler.WithUser(blogHandler.Update), requireAuth)
	e.DELETE("/viewBlog/:id", handler.WithUser(blogHandler.Delete), requireAuth)
}

// unauthenticatedError carries the gate's verdict to the middleware error handler.
type unauthenticatedError struct {
	state auth.State
}

func (e *unauthenticatedError) Error() string {
	return fmt.Sprintf("unauthenticated: %s", e.state)
}

// authenticate reads the token cookie through echo-jwt and lets the gate decide.
// Anything short of an authenticated identity ends the request with a redirect to /login.
func authenticate(gate *auth.Gate, log *logger.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + handler.TokenCookieName,
		ContextKey:  handler.IdentityContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			identity := gate.Authenticate(c.Request().Context(), token)
			if !identity.Authenticated() {
				return nil, &unauthenticatedError{state: identity.State}
			}
			return identity, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			state := auth.StateNoToken
			var unauth *unauthenticatedError
			if errors.As(err, &unauth) {
				state = unauth.state
			}
			log.Debug("redirecting unauthenticated request",
				"state", state.String(),
				"uri", c.Request().RequestURI,
			)
			return c.Redirect(http.StatusFound, "/login")
		},
	})
}

func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
