package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onemsu-server/internal/mocks"
	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
)

func setupFreedomRouter(handler *FreedomHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/freedom-wall", handler.ListPosts)
	r.POST("/freedom-wall", handler.CreatePost)
	r.POST("/freedom-wall/:id/like", handler.LikePost)
	r.POST("/freedom-wall/:id/report", handler.ReportPost)
	return r
}

func TestCreatePostGeneratesAlias(t *testing.T) {
	postRepo := new(mocks.FreedomRepositoryMock)
	handler := NewFreedomHandler(postRepo)
	router := setupFreedomRouter(handler)

	authorID := 1
	postRepo.On("CreatePost", mock.Anything, &authorID, mock.MatchedBy(func(alias string) bool {
		return len(alias) == len("Anon-XXXXXX") && alias[:5] == "Anon-"
	}), "rant", "Main", "").
		Return(models.FreedomPost{ID: 3, Alias: "Anon-1A2B3C", Content: "rant", UserID: &authorID}, nil).Once()

	body := bytes.NewBufferString(`{"content":"rant","campus":"Main"}`)
	req := httptest.NewRequest(http.MethodPost, "/freedom-wall", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Anon-1A2B3C", resp["alias"])
	_, leaked := resp["user_id"]
	assert.False(t, leaked, "author id must not appear in responses")
	postRepo.AssertExpectations(t)
}

func TestCreatePostRequiresContent(t *testing.T) {
	handler := NewFreedomHandler(new(mocks.FreedomRepositoryMock))
	router := setupFreedomRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/freedom-wall", bytes.NewBufferString(`{"campus":"Main"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPostsEmptyIsNotNull(t *testing.T) {
	postRepo := new(mocks.FreedomRepositoryMock)
	handler := NewFreedomHandler(postRepo)
	router := setupFreedomRouter(handler)

	postRepo.On("ListPosts", mock.Anything, "", 50).Return(([]models.FreedomPost)(nil), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/freedom-wall", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"posts":[]`)
}

func TestLikePostSuccess(t *testing.T) {
	postRepo := new(mocks.FreedomRepositoryMock)
	handler := NewFreedomHandler(postRepo)
	router := setupFreedomRouter(handler)

	postRepo.On("LikePost", mock.Anything, 3).Return(5, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/freedom-wall/3/like", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"likes":5`)
	postRepo.AssertExpectations(t)
}

func TestLikePostMissing(t *testing.T) {
	postRepo := new(mocks.FreedomRepositoryMock)
	handler := NewFreedomHandler(postRepo)
	router := setupFreedomRouter(handler)

	postRepo.On("LikePost", mock.Anything, 99).Return(0, repositories.ErrPostNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/freedom-wall/99/like", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportPostSuccess(t *testing.T) {
	postRepo := new(mocks.FreedomRepositoryMock)
	handler := NewFreedomHandler(postRepo)
	router := setupFreedomRouter(handler)

	postRepo.On("ReportPost", mock.Anything, 3).Return(1, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/freedom-wall/3/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reports":1`)
}
