package twin

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/models"
)

func (s *Server) createBlog(c echo.Context) error {
	var blog models.Blog
	if err := bindBody(c, &blog); err != nil {
		return err
	}
	if blog.Title == "" || blog.Content == "" || blog.Category == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "title, content and category are required")
	}
	if blog.Author == "" {
		p, _ := currentPrincipal(c)
		blog.Author = p.Name
	}

	now := time.Now().UTC().Format(time.RFC3339)
	blog.ID = ""
	blog.CreatedAt, blog.UpdatedAt = now, now
	blog = s.data.SeedBlog(blog)

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Blog uploaded successfully",
		"blog":    blog,
	})
}

func (s *Server) listBlogs(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"blogs": s.data.blogs.list()})
}

func (s *Server) getBlog(c echo.Context) error {
	blog, ok := s.data.blogs.get(c.Param("id"))
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Blog not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"blog": blog})
}

func (s *Server) updateBlog(c echo.Context) error {
	id := c.Param("id")
	blog, ok := s.data.blogs.get(id)
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "Blog not found")
	}
	if err := bindBody(c, &blog); err != nil {
		return err
	}
	blog.ID = id
	blog.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	blog = s.data.SeedBlog(blog)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Blog updated successfully",
		"blog":    blog,
	})
}

func (s *Server) deleteBlog(c echo.Context) error {
	if !s.data.blogs.remove(c.Param("id")) {
		return httperror.NewHTTPError(http.StatusNotFound, "Blog not found")
	}
	return c.JSON(http.StatusOK, message("Blog deleted successfully"))
}
