package twin

import (
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

func (s *Server) createProduct(c echo.Context) error {
	var product models.Product
	if err := bindBody(c, &product); err != nil {
		return err
	}
	if strings.TrimSpace(product.BrandID) == "" || strings.TrimSpace(product.ProductName) == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "brandId and productname are required")
	}
	if _, ok := s.data.brands.get(product.BrandID); !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Brand not found")
	}

	product.ID = ""
	product = s.data.SeedProduct(product)

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": product,
	})
}

func (s *Server) listProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.data.products.list())
}

// listBrandProducts lists the caller's products. Admins pick the brand with ?brandId=.
func (s *Server) listBrandProducts(c echo.Context) error {
	p, _ := currentPrincipal(c)
	brandID := p.BrandID
	if brandID == "" {
		brandID = c.QueryParam("brandId")
	}

	products := ectolinq.Filter(s.data.products.list(), func(product models.Product) bool {
		return product.BrandID == brandID
	})
	return c.JSON(http.StatusOK, map[string]any{"products": products})
}

func (s *Server) getProduct(c echo.Context) error {
	product, ok := s.data.products.get(c.Param("id"))
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"product": product})
}

func (s *Server) updateProduct(c echo.Context) error {
	id := c.Param("id")
	product, ok := s.data.products.get(id)
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err := bindBody(c, &product); err != nil {
		return err
	}
	product.ID = id
	product = s.data.SeedProduct(product)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (s *Server) deleteProduct(c echo.Context) error {
	if !s.data.products.remove(c.Param("id")) {
		return httperror.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, message("Product deleted successfully"))
}
