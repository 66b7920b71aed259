package twin

import (
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

func (s *Server) createBrand(c echo.Context) error {
	var brand models.Brand
	if err := bindBody(c, &brand); err != nil {
		return err
	}
	if strings.TrimSpace(brand.BrandName) == "" || strings.TrimSpace(brand.ContactEmail) == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "brandName and contactEmail are required")
	}
	if _, exists := s.brandByEmail(brand.ContactEmail); exists {
		return httperror.NewHTTPError(http.StatusConflict, "Brand with this email already exists")
	}

	brand.ID = ""
	brand = s.data.SeedBrand(brand)
	s.logger.WithContext(c.Request().Context()).WithField("brand_id", brand.ID).Debug("Created brand")

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Brand created successfully",
		"brand":   brand,
	})
}

func (s *Server) listBrands(c echo.Context) error {
	return c.JSON(http.StatusOK, s.data.brands.list())
}

func (s *Server) getBrand(c echo.Context) error {
	brand, ok := s.data.brands.get(c.Param("id"))
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	return c.JSON(http.StatusOK, brand)
}

func (s *Server) updateBrand(c echo.Context) error {
	id := c.Param("id")
	brand, ok := s.data.brands.get(id)
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	previousEmail := brand.ContactEmail

	if err := bindBody(c, &brand); err != nil {
		return err
	}
	brand.ID = id
	if !strings.EqualFold(previousEmail, brand.ContactEmail) {
		if _, exists := s.brandByEmail(brand.ContactEmail); exists {
			return httperror.NewHTTPError(http.StatusConflict, "Brand with this email already exists")
		}
	}

	if brand.Password == "" {
		brand.Password = s.data.password(id)
	}
	brand = s.data.SeedBrand(brand)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Brand updated successfully",
		"brand":   brand,
	})
}

func (s *Server) deleteBrand(c echo.Context) error {
	if !s.data.brands.remove(c.Param("id")) {
		return httperror.NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	return c.JSON(http.StatusOK, message("Brand deleted successfully"))
}

func (s *Server) brandByEmail(email string) (models.Brand, bool) {
	return s.data.brands.find(func(b models.Brand) bool {
		return strings.EqualFold(b.ContactEmail, email)
	})
}
