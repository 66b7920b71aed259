// Package twin is an in-process fake of the Collably API. It serves every route of the
// client's route table over in-memory data so the client, store and importer can be
// exercised without the real service.
package twin

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/collably/pkg/api"
	ctxkeys "github.com/Ramsey-B/collably/pkg/context"
	"github.com/Ramsey-B/collably/pkg/health"
	"github.com/Ramsey-B/collably/pkg/middleware"
)

const principalKey = "principal"

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// Server is the fake Collably API
type Server struct {
	echo   *echo.Echo
	data   *Data
	logger ectologger.Logger
}

// New builds a server with every route registered and the admin account seeded
func New(logger ectologger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		data:   newData(),
		logger: logger,
	}

	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Context())
	e.Use(otelecho.Middleware("collably-twin"))
	e.Use(middleware.Logger(logger))

	checker := health.NewChecker()
	checker.Add("admin", func(context.Context) error {
		if _, ok := s.data.adminLogin(AdminEmail, AdminPassword); !ok {
			return errors.New("admin account is not seeded")
		}
		return nil
	})
	checker.RegisterRoutes(e)

	handlers := s.handlers()
	for _, route := range api.Routes() {
		handler, ok := handlers[route.Key]
		if !ok {
			continue
		}
		e.Add(route.Method, echoPath(route.Path), handler, s.routeMiddleware(route))
	}

	return s
}

// Data exposes the in-memory state for seeding and assertions
func (s *Server) Data() *Data {
	return s.data
}

// ServeHTTP lets the server back an httptest.Server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.logger.Infof("Fake Collably API listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a server started with Start
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handlers() map[api.RouteKey]echo.HandlerFunc {
	return map[api.RouteKey]echo.HandlerFunc{
		api.BrandsCreate: s.createBrand,
		api.BrandsList:   s.listBrands,
		api.BrandsGet:    s.getBrand,
		api.BrandsUpdate: s.updateBrand,
		api.BrandsDelete: s.deleteBrand,

		api.ProductsCreate:      s.createProduct,
		api.ProductsList:        s.listProducts,
		api.ProductsListByBrand: s.listBrandProducts,
		api.ProductsGet:         s.getProduct,
		api.ProductsUpdate:      s.updateProduct,
		api.ProductsDelete:      s.deleteProduct,

		api.UsersCreate:   s.createUser,
		api.UsersList:     s.listUsers,
		api.UsersGet:      s.getUser,
		api.UsersUpdate:   s.updateUser,
		api.UsersFollow:   s.followUser,
		api.UsersUnfollow: s.unfollowUser,
		api.UsersSearch:   s.searchUsers,

		api.OrdersList:        s.listOrders,
		api.OrdersListByBrand: s.listBrandOrders,
		api.OrdersGet:         s.getOrder,

		api.AuthAdminLogin: s.adminLogin,
		api.AuthBrandLogin: s.brandLogin,

		api.ReferralsList:         s.listReferrals,
		api.ReferralsByBrand:      s.listBrandReferrals,
		api.ReferralsUsersByBrand: s.listBrandUsers,
		api.ReferralsUserBrand:    s.listUserBrandReferrals,

		api.BlogsCreate: s.createBlog,
		api.BlogsList:   s.listBlogs,
		api.BlogsGet:    s.getBlog,
		api.BlogsUpdate: s.updateBlog,
		api.BlogsDelete: s.deleteBlog,
	}
}

// routeMiddleware counts calls, serves injected faults and enforces the token on auth routes
func (s *Server) routeMiddleware(route api.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(ctxkeys.SetRoute(c.Request().Context(), string(route.Key))))
			if f, ok := s.data.record(route.Key); ok {
				middleware.MarkFault(c)
				return httperror.NewHTTPError(f.status, f.message)
			}

			token := strings.TrimSpace(strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer "))
			if p, ok := s.data.principalFor(token); ok {
				c.Set(principalKey, p)
				c.SetRequest(c.Request().WithContext(ctxkeys.SetPrincipal(c.Request().Context(), p.ID)))
			} else if route.Auth {
				return httperror.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			return next(c)
		}
	}
}

func currentPrincipal(c echo.Context) (principal, bool) {
	p, ok := c.Get(principalKey).(principal)
	return p, ok
}

func echoPath(path string) string {
	return placeholderPattern.ReplaceAllString(path, ":$1")
}
