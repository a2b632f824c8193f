package handlers

import (
	"bytes"
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

func setupGroupRouter(handler *GroupHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/groups", handler.ListGroups)
	r.POST("/groups", handler.CreateGroup)
	r.POST("/groups/:id/join", handler.JoinGroup)
	return r
}

func TestListGroupsFiltersByCampus(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, new(mocks.UserRepositoryMock), "")
	router := setupGroupRouter(handler)

	groupRepo.On("ListGroups", mock.Anything, "Main").
		Return([]models.Group{{ID: 1, Name: "Chess Club", Campus: "Main"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/groups?campus=Main", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chess Club")
	groupRepo.AssertExpectations(t)
}

func TestCreateGroupOwnerOnly(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewGroupHandler(groupRepo, userRepo, "owner@msu.edu.ph")
	router := setupGroupRouter(handler)

	userRepo.On("GetByID", mock.Anything, 1).
		Return(models.User{ID: 1, Email: "student@msu.edu.ph"}, nil).Once()

	body := bytes.NewBufferString(`{"name":"Chess Club"}`)
	req := httptest.NewRequest(http.MethodPost, "/groups", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	groupRepo.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateGroupAsOwner(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewGroupHandler(groupRepo, userRepo, "owner@msu.edu.ph")
	router := setupGroupRouter(handler)

	userRepo.On("GetByID", mock.Anything, 1).
		Return(models.User{ID: 1, Email: "owner@msu.edu.ph"}, nil).Once()
	groupRepo.On("CreateGroup", mock.Anything, "Chess Club", "weekly matches", "Main", "").
		Return(models.Group{ID: 2, Name: "Chess Club"}, nil).Once()

	body := bytes.NewBufferString(`{"name":"Chess Club","description":"weekly matches","campus":"Main"}`)
	req := httptest.NewRequest(http.MethodPost, "/groups", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	groupRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestJoinGroupResolvesRoomID(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, new(mocks.UserRepositoryMock), "")
	router := setupGroupRouter(handler)

	groupRepo.On("GetGroup", mock.Anything, 2).
		Return(models.Group{ID: 2, Name: "Chess Club"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/groups/2/join", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"room_id":"group-chess-club"`)
	groupRepo.AssertExpectations(t)
}

func TestJoinGroupMissing(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, new(mocks.UserRepositoryMock), "")
	router := setupGroupRouter(handler)

	groupRepo.On("GetGroup", mock.Anything, 9).
		Return(models.Group{}, repositories.ErrGroupNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/groups/9/join", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
