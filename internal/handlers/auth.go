package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"onemsu-server/internal/middleware"
	"onemsu-server/internal/models"
	"onemsu-server/internal/repositories"
	"onemsu-server/internal/telemetry"
)

// AuthHandler manages signup and login.
type AuthHandler struct {
	users      repositories.UserRepository
	follows    repositories.FollowRepository
	jwtSecret  string
	ownerEmail string
	audit      *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users repositories.UserRepository, follows repositories.FollowRepository, jwtSecret, ownerEmail string, audit *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{
		users:      users,
		follows:    follows,
		jwtSecret:  jwtSecret,
		ownerEmail: ownerEmail,
		audit:      audit,
	}
}

// Signup registers an account and subscribes it to the owner account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Campus   string `json:"campus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Name, req.Email, string(hash), req.Campus)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	h.followOwner(c, user)

	token, err := h.issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	newUserID := strconv.Itoa(user.ID)
	h.audit.Emit(c.Request.Context(), "INFO", "user signed up", requestIDFromContext(c), &newUserID)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login checks credentials and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "user logged in", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// followOwner bootstraps the new account into the owner's audience. Best
// effort: a failure is logged, not surfaced.
func (h *AuthHandler) followOwner(c *gin.Context, user models.User) {
	if h.ownerEmail == "" || user.Email == h.ownerEmail {
		return
	}
	owner, err := h.users.GetByEmail(c.Request.Context(), h.ownerEmail)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			log.Printf("signup: owner lookup failed: %v", err)
		}
		return
	}
	if owner.ID == user.ID {
		return
	}
	if err := h.follows.Follow(c.Request.Context(), user.ID, owner.ID); err != nil {
		log.Printf("signup: auto-follow owner failed: %v", err)
	}
}

func (h *AuthHandler) issueToken(userID int) (string, error) {
	claims := middleware.AuthClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
}
