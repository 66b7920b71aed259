package twin

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

func (s *Server) listOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"orders": s.data.orders.list()})
}

// listBrandOrders returns orders containing at least one of the brand's products
func (s *Server) listBrandOrders(c echo.Context) error {
	brandID := c.Param("brandId")
	owned := map[string]bool{}
	for _, product := range s.data.products.list() {
		if product.BrandID == brandID {
			owned[product.ID] = true
		}
	}

	orders := ectolinq.Filter(s.data.orders.list(), func(o models.Order) bool {
		for _, item := range o.Items {
			if owned[item.Product] {
				return true
			}
		}
		return false
	})
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) getOrder(c echo.Context) error {
	order, ok := s.data.orders.get(c.Param("id"))
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"order": order})
}
