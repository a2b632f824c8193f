package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
)

const freedomPageSize = 50

// FreedomHandler serves the anonymous wall.
type FreedomHandler struct {
	posts repositories.FreedomRepository
}

// NewFreedomHandler builds a FreedomHandler.
func NewFreedomHandler(posts repositories.FreedomRepository) *FreedomHandler {
	return &FreedomHandler{posts: posts}
}

// ListPosts returns wall posts newest first, optionally campus-filtered.
func (h *FreedomHandler) ListPosts(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context(), c.Query("campus"), freedomPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	if posts == nil {
		posts = []models.FreedomPost{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost publishes a post under a server-generated alias. The author id
// is stored but never leaves the database in any response.
func (h *FreedomHandler) CreatePost(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		Campus   string `json:"campus"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var authorID *int
	if id := c.GetInt("userID"); id != 0 {
		authorID = &id
	}

	post, err := h.posts.CreatePost(c.Request.Context(), authorID, newAnonAlias(), req.Content, req.Campus, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// LikePost bumps the like counter.
func (h *FreedomHandler) LikePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	likes, err := h.posts.LikePost(c.Request.Context(), postID)
	if err != nil {
		h.writeCounterError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// ReportPost bumps the report counter.
func (h *FreedomHandler) ReportPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reports, err := h.posts.ReportPost(c.Request.Context(), postID)
	if err != nil {
		h.writeCounterError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *FreedomHandler) writeCounterError(c *gin.Context, err error) {
	if errors.Is(err, repositories.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
}

func newAnonAlias() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "Anon-000000"
	}
	return "Anon-" + strings.ToUpper(hex.EncodeToString(buf))
}
