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
	"golang.org/x/crypto/bcrypt"

	"onemsu-server/internal/mocks"
	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
	"onemsu-server/internal/telemetry"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/login", handler.Login)
	return r
}

func TestSignupSuccessAutoFollowsOwner(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	followRepo := new(mocks.FollowRepositoryMock)
	handler := NewAuthHandler(userRepo, followRepo, "test-secret", "owner@msu.edu.ph", nil)
	router := setupAuthRouter(handler)

	userRepo.On("Create", mock.Anything, "Juan", "juan@msu.edu.ph", mock.AnythingOfType("string"), "Main").
		Return(models.User{ID: 4, Name: "Juan", Email: "juan@msu.edu.ph"}, nil).Once()
	userRepo.On("GetByEmail", mock.Anything, "owner@msu.edu.ph").
		Return(models.User{ID: 1, Email: "owner@msu.edu.ph"}, nil).Once()
	followRepo.On("Follow", mock.Anything, 4, 1).Return(nil).Once()

	body := bytes.NewBufferString(`{"name":"Juan","email":"juan@msu.edu.ph","password":"secret1","campus":"Main"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	userRepo.AssertExpectations(t)
	followRepo.AssertExpectations(t)
}

func TestSignupAuditCarriesNewUserID(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	publisher := new(mocks.PublisherMock)
	audit := telemetry.NewAuditEmitter(publisher, "audit_log.onemsu", "onemsu-server", "test")
	handler := NewAuthHandler(userRepo, new(mocks.FollowRepositoryMock), "test-secret", "", audit)
	router := setupAuthRouter(handler)

	userRepo.On("Create", mock.Anything, "Juan", "juan@msu.edu.ph", mock.AnythingOfType("string"), "").
		Return(models.User{ID: 4, Name: "Juan", Email: "juan@msu.edu.ph"}, nil).Once()
	publisher.On("Publish", mock.Anything, "audit_log.onemsu", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(telemetry.AuditEnvelope)
		return ok && envelope.UserID != nil && *envelope.UserID == "4"
	})).Return(nil).Once()

	body := bytes.NewBufferString(`{"name":"Juan","email":"juan@msu.edu.ph","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	publisher.AssertExpectations(t)
}

func TestSignupDuplicateEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, new(mocks.FollowRepositoryMock), "test-secret", "", nil)
	router := setupAuthRouter(handler)

	userRepo.On("Create", mock.Anything, "Juan", "juan@msu.edu.ph", mock.AnythingOfType("string"), "").
		Return(models.User{}, repositories.ErrEmailTaken).Once()

	body := bytes.NewBufferString(`{"name":"Juan","email":"juan@msu.edu.ph","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestSignupShortPasswordRejected(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, new(mocks.FollowRepositoryMock), "test-secret", "", nil)
	router := setupAuthRouter(handler)

	body := bytes.NewBufferString(`{"name":"Juan","email":"juan@msu.edu.ph","password":"abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, new(mocks.FollowRepositoryMock), "test-secret", "", nil)
	router := setupAuthRouter(handler)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "juan@msu.edu.ph").
		Return(models.User{ID: 4, Email: "juan@msu.edu.ph", PasswordHash: string(hash)}, nil).Once()

	body := bytes.NewBufferString(`{"email":"juan@msu.edu.ph","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	userRepo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, new(mocks.FollowRepositoryMock), "test-secret", "", nil)
	router := setupAuthRouter(handler)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "juan@msu.edu.ph").
		Return(models.User{ID: 4, PasswordHash: string(hash)}, nil).Once()

	body := bytes.NewBufferString(`{"email":"juan@msu.edu.ph","password":"nope123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, new(mocks.FollowRepositoryMock), "test-secret", "", nil)
	router := setupAuthRouter(handler)

	userRepo.On("GetByEmail", mock.Anything, "ghost@msu.edu.ph").
		Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"email":"ghost@msu.edu.ph","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
