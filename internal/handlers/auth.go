package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sociablehq/sociable/backend/internal/models"
	"github.com/sociablehq/sociable/backend/internal/repositories"
	"github.com/sociablehq/sociable/backend/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"gorm.io/gorm"
)

const stateCookieName = "oauth_state"

// AuthHandler handles GitHub OAuth sign-in and session token issuance
type AuthHandler struct {
	userRepository repositories.UserRepository
	oauthConfig    *oauth2.Config
	jwtSecret      string
	userAPIURL     string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubRedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		jwtSecret:  cfg.JWTSecret,
		userAPIURL: "https://api.github.com/user",
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/github/login", h.GitHubLogin)
	g.GET("/github/callback", h.GitHubCallback)
}

// GitHubLogin redirects the browser to the GitHub authorize page
func (h *AuthHandler) GitHubLogin(c echo.Context) error {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not generate OAuth state")
	}
	state := hex.EncodeToString(buf)

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	})

	return c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state))
}

// gitHubProfile is the subset of the GitHub user API response we consume
type gitHubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// GitHubCallback exchanges the authorization code, upserts the user on
// first sign-in and returns a session token.
func (h *AuthHandler) GitHubCallback(c echo.Context) error {
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return echo.NewHTTPError(http.StatusUnauthorized, "OAuth state mismatch")
	}

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing authorization code")
	}

	ctx := c.Request().Context()
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "OAuth code exchange failed")
	}

	profile, err := h.fetchProfile(ctx, token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Could not fetch GitHub profile")
	}

	user, err := h.upsertUser(profile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not create user account")
	}

	sessionToken, err := h.issueSessionToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not issue session token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": sessionToken,
		"user":  user,
	})
}

// fetchProfile retrieves the authenticated user's GitHub profile
func (h *AuthHandler) fetchProfile(ctx context.Context, token *oauth2.Token) (*gitHubProfile, error) {
	client := h.oauthConfig.Client(ctx, token)
	resp, err := client.Get(h.userAPIURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user API returned %d", resp.StatusCode)
	}

	var profile gitHubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, fmt.Errorf("github profile has no id")
	}
	return &profile, nil
}

// upsertUser creates the account on first sign-in with an empty
// liked-set, or returns the existing row.
func (h *AuthHandler) upsertUser(profile *gitHubProfile) (*models.User, error) {
	id := strconv.FormatInt(profile.ID, 10)

	user, err := h.userRepository.GetUserByID(id)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}
	user = &models.User{
		ID:           id,
		Name:         name,
		Email:        profile.Email,
		ProfileImage: profile.AvatarURL,
		LikedPosts:   []models.LikedPost{},
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueSessionToken signs a JWT for the user, valid for 72 hours
func (h *AuthHandler) issueSessionToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
