package handlers

import (
	"net/http"
	"strconv"

	"herptrack/internal/models"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Species string `json:"species,omitempty"`
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// @Summary      Create forum post
// @Tags         forum
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.ForumPost
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/forum/posts [post]
// @Security     BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	var input postRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	created, err := h.services.Forum.Post(c.Request.Context(), models.ForumPost{
		AuthorID: currentUserID(c),
		Species:  input.Species,
		Title:    input.Title,
		Body:     input.Body,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "forum_post_failed", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// @Summary      List forum posts
// @Tags         forum
// @Produce      json
// @Param        species  query  string  false  "Species filter"
// @Param        limit    query  int     false  "Max posts (default 50)"
// @Success      200  {object}  map[string]interface{}  "count, posts"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/forum/posts [get]
// @Security     BearerAuth
func (h *Handler) listPosts(c *gin.Context) {
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil && v > 0 {
			limit = v
		}
	}

	posts, err := h.services.Forum.List(c.Request.Context(), c.Query("species"), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list posts", "forum_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "posts": posts})
}

// @Summary      List product recommendations
// @Tags         products
// @Produce      json
// @Param        species   query  string  false  "Species filter"
// @Param        category  query  string  false  "Category filter (uvb, heat, supplement, food)"
// @Success      200  {object}  map[string]interface{}  "count, products"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products [get]
// @Security     BearerAuth
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.services.Products.Recommend(c.Request.Context(), c.Query("species"), c.Query("category"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list products", "products_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
