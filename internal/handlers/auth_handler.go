package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
	"taskhub/internal/services"
	"taskhub/internal/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthHandler struct {
	users       services.UserService
	userRepo    repositories.UserRepository
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(users services.UserService, userRepo repositories.UserRepository, authService services.AuthService, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{users: users, userRepo: userRepo, authService: authService, jwtSecret: jwtSecret}
}

// @Summary      Registrar usuário
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Dados de cadastro"
// @Success      201       {object}  models.User
// @Failure      400       {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][register][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{Name: strings.TrimSpace(req.Name), Email: req.Email}
	if err := h.users.Register(c.Request.Context(), user, req.Password); err != nil {
		log.Printf("[auth][register][err] email=%q: %v", req.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[auth][register][ok] id=%d email=%q", user.ID, user.Email)
	c.JSON(http.StatusCreated, user)
}

// @Summary      Entrar
// @Description  Autentica o usuário e devolve tokens de acesso e refresh
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credenciais"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		log.Printf("[auth][login] user not found email=%q err=%v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !h.authService.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)) {
		log.Printf("[auth][login] password mismatch userID=%d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	h.issueTokens(c, user)
}

// @Summary      Renovar tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body      map[string]string  true  "refresh_token"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetByRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil || user == nil {
		log.Printf("[auth][refresh] invalid refresh token err=%v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	h.issueTokens(c, user)
}

// @Summary      Sair
// @Description  Invalida o refresh token do usuário autenticado
// @Tags         Auth
// @Produce      json
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := getUserID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if err := h.userRepo.ClearRefresh(c.Request.Context(), uid); err != nil {
		log.Printf("[auth][logout][err] userID=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	log.Printf("[auth][logout][ok] userID=%d", uid)
	c.Status(http.StatusNoContent)
}

// issueTokens signs a fresh access JWT and rotates the refresh token.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) {
	claims := &middleware.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
	if err != nil {
		log.Printf("[auth][token][err] sign userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	refreshToken, err := utils.NewRefreshToken(32)
	if err != nil {
		log.Printf("[auth][token][err] refresh userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	if err := h.userRepo.UpdateRefresh(c.Request.Context(), user.ID, refreshToken, time.Now().Add(refreshTokenTTL)); err != nil {
		log.Printf("[auth][token][err] store refresh userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	log.Printf("[auth][token][ok] userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(accessTokenTTL.Seconds()),
		"user":          user,
	})
}
