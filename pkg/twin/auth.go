package twin

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

const invalidCredentials = "Invalid email or password"

func (s *Server) adminLogin(c echo.Context) error {
	var body models.AdminLoginBody
	if err := bindBody(c, &body); err != nil {
		return err
	}

	admin, ok := s.data.adminLogin(body.Email, body.Password)
	if !ok {
		return httperror.NewHTTPError(http.StatusUnauthorized, invalidCredentials)
	}

	token := s.data.IssueToken(models.RoleAdmin, admin.ID, "", admin.Name)
	return c.JSON(http.StatusOK, models.LoginResponse{
		Token:   token,
		Message: "Login successful",
		Admin:   &admin,
	})
}

func (s *Server) brandLogin(c echo.Context) error {
	var body models.BrandLoginBody
	if err := bindBody(c, &body); err != nil {
		return err
	}

	brand, ok := s.data.brandLogin(body.ContactEmail, body.Password)
	if !ok {
		return httperror.NewHTTPError(http.StatusUnauthorized, invalidCredentials)
	}

	token := s.data.IssueToken(models.RoleBrand, brand.ID, brand.ID, brand.BrandName)
	return c.JSON(http.StatusOK, models.LoginResponse{
		Token:   token,
		Message: "Login successful",
		Brand:   &brand,
	})
}
