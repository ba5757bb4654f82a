package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /home
// @Summary Global feed
// @Description List all posts, newest first, with author usernames
// @Tags posts
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} object{posts=[]models.Post}
// @Router /home [get]
func (s *Server) Home(c *fiber.Ctx) error {
	p := parsePagination(c, defaultFeedLimit)

	posts, err := s.postService.ListPosts(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// MyPosts handles GET /myposts
// @Summary Caller's posts
// @Description List the authenticated user's posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} object{posts=[]models.Post}
// @Router /myposts [get]
func (s *Server) MyPosts(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	p := parsePagination(c, defaultFeedLimit)

	posts, err := s.postService.ListPostsByAuthor(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// CreatePost handles POST /post
// @Summary Create a post
// @Description Create a post owned by the session's user and redirect to /myposts
// @Tags posts
// @Accept x-www-form-urlencoded
// @Param subject formData string true "Subject"
// @Param text formData string true "Body text"
// @Success 302
// @Failure 400 {object} models.ErrorResponse
// @Router /post [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	_, err = s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Subject: c.FormValue("subject"),
		Content: c.FormValue("text"),
		UserID:  userID,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Redirect("/myposts", fiber.StatusFound)
}

// DeletePost handles POST /delete/:id
// @Summary Delete a post
// @Description Delete one of the caller's own posts and redirect to /myposts
// @Tags posts
// @Param id path int true "Post ID"
// @Success 302
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /delete/{id} [post]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), postID, userID); err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Redirect("/myposts", fiber.StatusFound)
}

// respondServiceError maps AppError codes onto HTTP statuses.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case "FORBIDDEN":
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
