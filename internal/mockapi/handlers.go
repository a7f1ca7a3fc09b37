package mockapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recordops/recordadmin/internal/core/domain"
)

// UserHandler serves the /users resource.
type UserHandler struct {
	store *Store
}

func NewUserHandler(store *Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListUsers())
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, ok := h.store.GetUser(id)
	if !ok {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Create(c echo.Context) error {
	var draft domain.User
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created := h.store.CreateUser(draft)
	UsersWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Replace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var u domain.User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, ok := h.store.ReplaceUser(id, u)
	if !ok {
		return domain.ErrUserNotFound
	}
	UsersWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, ok := h.store.PatchUser(id, fields)
	if !ok {
		return domain.ErrUserNotFound
	}
	UsersWritesTotal.WithLabelValues("patch").Inc()
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if !h.store.DeleteUser(id) {
		return domain.ErrUserNotFound
	}
	UsersWritesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusOK)
}

// PostHandler serves the /posts resource.
type PostHandler struct {
	store *Store
}

func NewPostHandler(store *Store) *PostHandler {
	return &PostHandler{store: store}
}

// List supports the optional userId query parameter for owner-filtered views.
func (h *PostHandler) List(c echo.Context) error {
	userID := 0
	if raw := c.QueryParam("userId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "userId must be an integer")
		}
		userID = parsed
	}
	return c.JSON(http.StatusOK, h.store.ListPosts(userID))
}

func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, ok := h.store.GetPost(id)
	if !ok {
		return domain.ErrPostNotFound
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Create(c echo.Context) error {
	var draft domain.Post
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created := h.store.CreatePost(draft)
	PostsWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, created)
}

func (h *PostHandler) Replace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var p domain.Post
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, ok := h.store.ReplacePost(id, p)
	if !ok {
		return domain.ErrPostNotFound
	}
	PostsWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, ok := h.store.PatchPost(id, fields)
	if !ok {
		return domain.ErrPostNotFound
	}
	PostsWritesTotal.WithLabelValues("patch").Inc()
	return c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if !h.store.DeletePost(id) {
		return domain.ErrPostNotFound
	}
	PostsWritesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusOK)
}

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}
