package twin

import (
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

func (s *Server) createUser(c echo.Context) error {
	var user models.User
	if err := bindBody(c, &user); err != nil {
		return err
	}
	if user.Fullname == "" || user.Username == "" || user.Email == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "fullname, username and email are required")
	}
	if _, exists := s.data.users.find(func(u models.User) bool {
		return strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username)
	}); exists {
		return httperror.NewHTTPError(http.StatusConflict, "User already exists")
	}

	user.ID = ""
	user = s.data.SeedUser(user)

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"users": s.data.users.list()})
}

func (s *Server) getUser(c echo.Context) error {
	user, ok := s.data.users.get(c.Param("id"))
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// updateUser edits the profile named by the body's _id, or the caller's own profile
func (s *Server) updateUser(c echo.Context) error {
	var body struct {
		ID string `json:"_id"`
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	if err := decodeInto(raw, &body); err != nil {
		return err
	}

	id := body.ID
	if id == "" {
		p, _ := currentPrincipal(c)
		id = p.ID
	}
	user, ok := s.data.users.get(id)
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err := decodeInto(raw, &user); err != nil {
		return err
	}
	user.ID = id
	user = s.data.SeedUser(user)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (s *Server) followUser(c echo.Context) error {
	return s.setFollow(c, true)
}

func (s *Server) unfollowUser(c echo.Context) error {
	return s.setFollow(c, false)
}

func (s *Server) setFollow(c echo.Context, follow bool) error {
	p, _ := currentPrincipal(c)
	target, ok := s.data.users.get(c.Param("id"))
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if target.ID == p.ID {
		return httperror.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	already := ectolinq.Contains(target.Followers, p.ID)
	if follow && already {
		return httperror.NewHTTPError(http.StatusBadRequest, "You already follow this user")
	}
	if !follow && !already {
		return httperror.NewHTTPError(http.StatusBadRequest, "You do not follow this user")
	}

	target.Followers = toggle(target.Followers, p.ID, follow)
	target = s.data.SeedUser(target)

	if follower, ok := s.data.users.get(p.ID); ok {
		follower.Following = toggle(follower.Following, target.ID, follow)
		s.data.SeedUser(follower)
	}

	return c.JSON(http.StatusOK, map[string]any{"user": target})
}

func (s *Server) searchUsers(c echo.Context) error {
	needle := strings.ToLower(strings.TrimSpace(c.QueryParam("username")))
	users := ectolinq.Filter(s.data.users.list(), func(u models.User) bool {
		return needle != "" && strings.Contains(strings.ToLower(u.Username), needle)
	})
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

func toggle(ids []string, id string, present bool) []string {
	result := ectolinq.Filter(ids, func(existing string) bool { return existing != id })
	if present {
		result = append(result, id)
	}
	return result
}
