package auth

import (
	"context"
	"crypto/rand"
	"os"
	"slices"
	"time"

	"pitboxBackend/config"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/coreos/go-oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

type (
	AuthManager interface {
		CreateAuthToken(authUser AuthenticatedUser) (string, error)
		CreateAccessToken(authUser AuthenticatedUser) (string, error)
		AuthenticateUser(tokenString string) (*AuthenticatedUser, error)
		RefreshAccessToken(authToken string) (string, error)
		GetAuthCodeURL(stateToken string) (string, error)
		AuthenticateWithCode(authCode string, userSubToIdMapper OpenIdUserMapper) (*AuthenticatedUser, error)
		AuthenticatorMiddleware() gin.HandlerFunc
		OptionalAuthenticatorMiddleware() gin.HandlerFunc
		IsNativeEnabled() bool
		IsOpenIdEnabled() bool
	}

	// OpenIdUserMapper resolves an OpenID subject to a local user id,
	// creating the account on first login.
	OpenIdUserMapper func(userSub string, userEmail string) (string, error)

	authManager struct {
		config          *config.PitboxConfig
		oauth2Config    oauth2.Config
		provider        *oidc.Provider
		oidcSecret      string
		jwtSecret       []byte
		adminGroups     []string
		isNativeEnabled bool
		isOpenIdEnabled bool
	}

	AuthenticatedUser struct {
		// The UUID of the user
		UserId  string
		IsAdmin bool
	}
)

const AccessTokenCookie = "accessToken"
const AuthTokenCookie = "authToken"
const ContextUserKey = "authUser"

const authTokenLifetime = time.Hour * 720
const accessTokenLifetime = time.Minute * 15

func CreateAuthManager(config *config.PitboxConfig) AuthManager {
	jwtSecret := os.Getenv("PB_JWT_SECRET")
	if jwtSecret == "" {
		// Sessions do not survive a restart without a configured secret
		jwtSecret = rand.Text()
	}

	authManager := &authManager{
		config:          config,
		adminGroups:     config.Auth.OpenIdAdminGroups,
		jwtSecret:       ([]byte)(jwtSecret),
		oidcSecret:      os.Getenv("PB_OIDC_SECRET"),
		isNativeEnabled: config.Auth.EnableNative,
		isOpenIdEnabled: config.Auth.EnableOpenId,
	}

	if authManager.isOpenIdEnabled {
		provider, err := oidc.NewProvider(context.TODO(), config.Auth.OpenIdIssuer)
		if err != nil {
			log.Fatalf("Failed to connect to OpenID provider: %s", err.Error())
			os.Exit(1)
		}

		authManager.provider = provider
		authManager.oauth2Config = oauth2.Config{
			ClientID:     config.Auth.OpenIdClientId,
			ClientSecret: authManager.oidcSecret,
			RedirectURL:  config.Auth.OpenIdRedirectHost + "/users/login/success",
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
	}

	return authManager
}

func (m *authManager) IsNativeEnabled() bool {
	return m.isNativeEnabled
}

func (m *authManager) IsOpenIdEnabled() bool {
	return m.isOpenIdEnabled
}

func (m *authManager) AuthenticatorMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken, err := ctx.Cookie(AccessTokenCookie)
		if err != nil {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrUnauthorized))
			ctx.Abort()
			return
		}

		if user, err := m.AuthenticateUser(accessToken); err != nil {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrTokenInvalid))
			ctx.Abort()
			return
		} else {
			ctx.Set(ContextUserKey, *user)
			ctx.Next()
		}
	}
}

// OptionalAuthenticatorMiddleware attaches the authenticated user when a
// valid token is present but lets anonymous requests through. The sharing
// gate needs to distinguish anonymous from logged-in requesters.
func (m *authManager) OptionalAuthenticatorMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if accessToken, err := ctx.Cookie(AccessTokenCookie); err == nil {
			if user, err := m.AuthenticateUser(accessToken); err == nil {
				ctx.Set(ContextUserKey, *user)
			}
		}
		ctx.Next()
	}
}

func (m *authManager) RefreshAccessToken(authToken string) (string, error) {
	if authUser, err := m.AuthenticateUser(authToken); err != nil {
		return "", err
	} else if newAccessToken, err := m.CreateAccessToken(*authUser); err != nil {
		return "", err
	} else {
		return newAccessToken, nil
	}
}

func (m *authManager) GetAuthCodeURL(stateToken string) (string, error) {
	if !m.isOpenIdEnabled {
		return "", utils.ErrOpenIDAuthDisabled
	}

	return m.oauth2Config.AuthCodeURL(stateToken), nil
}

func (m *authManager) AuthenticateWithCode(authCode string, userSubToIdMapper OpenIdUserMapper) (*AuthenticatedUser, error) {
	if !m.isOpenIdEnabled {
		return nil, utils.ErrOpenIDAuthDisabled
	}

	ctx := context.TODO()
	token, err := m.oauth2Config.Exchange(ctx, authCode)
	if err != nil {
		log.Errorf("[AUTH] OAuth token exchange failed: %s", err.Error())
		return nil, utils.ErrOpenIDError
	}

	info, err := m.provider.UserInfo(ctx, m.oauth2Config.TokenSource(ctx, token))
	if err != nil {
		log.Errorf("[AUTH] Failed to get oauth userinfo: %s", err.Error())
		return nil, utils.ErrOpenIDError
	}

	var claims struct {
		Sub    string   `json:"sub"`
		Groups []string `json:"groups"`
		Email  string   `json:"email"`
	}

	if err := info.Claims(&claims); err != nil {
		log.Warnf("[AUTH] Failed to parse claims from userinfo: %s", err.Error())
		return nil, utils.ErrOpenIDError
	}

	isAdmin := false
	for _, group := range m.adminGroups {
		if slices.Contains(claims.Groups, group) {
			isAdmin = true
			break
		}
	}

	userId, err := userSubToIdMapper(claims.Sub, claims.Email)
	if err != nil {
		return nil, err
	}

	return &AuthenticatedUser{
		UserId:  userId,
		IsAdmin: isAdmin,
	}, nil
}

func (m *authManager) AuthenticateUser(tokenString string) (*AuthenticatedUser, error) {
	token, err := jwt.Parse(tokenString, m.tokenParser)
	if err != nil {
		return nil, utils.ErrTokenInvalid
	}

	tokenClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, utils.ErrTokenInvalid
	}

	userId, ok := tokenClaims["id"].(string)
	if !ok {
		return nil, utils.ErrTokenInvalid
	}

	isAdmin, _ := tokenClaims["isAdmin"].(bool)

	return &AuthenticatedUser{
		UserId:  userId,
		IsAdmin: isAdmin,
	}, nil
}

func (m *authManager) CreateAuthToken(authUser AuthenticatedUser) (string, error) {
	pbToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      authUser.UserId,
		"isAdmin": authUser.IsAdmin,
		"nbf":     time.Now().Unix(),
		"exp":     time.Now().Add(authTokenLifetime).Unix(),
	})

	return pbToken.SignedString(m.jwtSecret)
}

func (m *authManager) CreateAccessToken(authUser AuthenticatedUser) (string, error) {
	pbToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      authUser.UserId,
		"isAdmin": authUser.IsAdmin,
		"nbf":     time.Now().Unix(),
		"exp":     time.Now().Add(accessTokenLifetime).Unix(),
	})

	return pbToken.SignedString(m.jwtSecret)
}

func (m *authManager) tokenParser(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, utils.ErrTokenInvalid
	}

	return m.jwtSecret, nil
}

// HashPassword hashes a native account password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against a candidate password.
func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
