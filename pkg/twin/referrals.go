package twin

import (
	"net/http"

	"github.com/Gobusters/ectolinq"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

func (s *Server) listReferrals(c echo.Context) error {
	return c.JSON(http.StatusOK, s.referrals(func(brandReferral) bool { return true }))
}

func (s *Server) listBrandReferrals(c echo.Context) error {
	brandID := c.Param("brandId")
	return c.JSON(http.StatusOK, s.referrals(func(r brandReferral) bool {
		return r.BrandID == brandID
	}))
}

func (s *Server) listUserBrandReferrals(c echo.Context) error {
	userID, brandID := c.Param("userId"), c.Param("brandId")
	return c.JSON(http.StatusOK, s.referrals(func(r brandReferral) bool {
		return r.BrandID == brandID && r.UserID.ID == userID
	}))
}

func (s *Server) listBrandUsers(c echo.Context) error {
	brandID := c.Param("brandId")
	users := ectolinq.Filter(s.data.brandUsers.list(), func(u brandUser) bool {
		return u.BrandID == brandID
	})
	return c.JSON(http.StatusOK, ectolinq.Map(users, func(u brandUser) models.BrandUser {
		return u.BrandUser
	}))
}

func (s *Server) referrals(match func(brandReferral) bool) []models.Referral {
	return ectolinq.Map(ectolinq.Filter(s.data.referrals.list(), match), func(r brandReferral) models.Referral {
		return r.Referral
	})
}
