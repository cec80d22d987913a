package user

import (
	"context"
	"fmt"

	"pitboxBackend/auth"
	"pitboxBackend/billing"
	"pitboxBackend/mail"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	// OwnedDataPurger removes everything a user owns before the account
	// row itself goes away. Implemented by the model service, which walks
	// the aggregate cascade. CountAll feeds the admin dashboard.
	OwnedDataPurger interface {
		DeleteAllForCreator(ctx context.Context, creatorId string) error
		CountAll(ctx context.Context) (int64, error)
	}

	Service interface {
		SetPurger(purger OwnedDataPurger)
		Register(ctx *gin.Context, req RegisterIn) (string, string, error)
		LoginNative(ctx *gin.Context, req CredentialsIn) (string, string, error)
		GetAuthCodeURL(stateToken string) (string, error)
		AuthenticateWithCode(ctx *gin.Context, authCode string) (string, string, error)
		RefreshAccessToken(authToken string) (string, error)
		AuthConfig() AuthConfigOut

		GetProfile(ctx *gin.Context, authUser auth.AuthenticatedUser) (*UserOut, error)
		UpdateProfile(ctx *gin.Context, authUser auth.AuthenticatedUser, req ProfileUpdateIn) error
		RedeemCharge(ctx *gin.Context, authUser auth.AuthenticatedUser, req RedeemChargeIn) error

		GetAll(ctx *gin.Context, authUser auth.AuthenticatedUser) ([]UserOut, error)
		AdminStats(ctx *gin.Context, authUser auth.AuthenticatedUser) (*AdminStatsOut, error)
		AdminUpdate(ctx *gin.Context, authUser auth.AuthenticatedUser, userId string, req AdminUserUpdateIn) error
		AdminDelete(ctx *gin.Context, authUser auth.AuthenticatedUser, userId string) error
	}

	userService struct {
		userRepo        Repository
		authManager     auth.AuthManager
		paymentVerifier billing.PaymentVerifier
		mailer          mail.Mailer
		purger          OwnedDataPurger
		freeModelQuota  int
	}
)

func CreateService(userRepo Repository, authManager auth.AuthManager, paymentVerifier billing.PaymentVerifier, mailer mail.Mailer, freeModelQuota int) Service {
	return &userService{
		userRepo:        userRepo,
		authManager:     authManager,
		paymentVerifier: paymentVerifier,
		mailer:          mailer,
		freeModelQuota:  freeModelQuota,
	}
}

// SetPurger breaks the construction cycle between the user and model
// services: the model service needs the user repository, the user service
// needs the model cascade on account deletion.
func (s *userService) SetPurger(purger OwnedDataPurger) {
	s.purger = purger
}

func (s *userService) Register(ctx *gin.Context, req RegisterIn) (string, string, error) {
	if !s.authManager.IsNativeEnabled() {
		return "", "", utils.ErrNativeAuthDisabled
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", "", utils.ErrServer
	}

	newUser := &User{
		UUID:            utils.GenerateUuid(),
		Email:           req.Email,
		Name:            req.Name,
		PasswordHash:    passwordHash,
		ModelQuota:      s.freeModelQuota,
		SharePreference: SharePublic,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return "", "", err
	}

	// Registration stands even when the welcome mail bounces
	body := fmt.Sprintf("Welcome to Pitbox, %s! Your garage is ready.", newUser.Name)
	if err := s.mailer.Send(newUser.Email, "Welcome to Pitbox", body); err != nil {
		log.Warnf("[MAIL] Failed to send welcome mail to '%s': %s", newUser.Email, err.Error())
	}

	return s.issueTokens(auth.AuthenticatedUser{UserId: newUser.UUID, IsAdmin: newUser.IsAdmin})
}

func (s *userService) LoginNative(ctx *gin.Context, req CredentialsIn) (string, string, error) {
	if !s.authManager.IsNativeEnabled() {
		return "", "", utils.ErrNativeAuthDisabled
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || account.PasswordHash == "" {
		return "", "", utils.ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return "", "", utils.ErrInvalidCredentials
	}

	return s.issueTokens(auth.AuthenticatedUser{UserId: account.UUID, IsAdmin: account.IsAdmin})
}

func (s *userService) GetAuthCodeURL(stateToken string) (string, error) {
	return s.authManager.GetAuthCodeURL(stateToken)
}

func (s *userService) AuthenticateWithCode(ctx *gin.Context, authCode string) (string, string, error) {
	authUser, err := s.authManager.AuthenticateWithCode(authCode, func(userSub string, userEmail string) (string, error) {
		account, accountExists, err := s.userRepo.GetBySub(ctx, userSub)
		if err != nil {
			return "", err
		}

		if !accountExists {
			// Create the account on first OpenID login
			account = &User{
				UUID:            utils.GenerateUuid(),
				Email:           userEmail,
				Name:            userEmail,
				Sub:             userSub,
				ModelQuota:      s.freeModelQuota,
				SharePreference: SharePublic,
			}
			err = s.userRepo.Create(ctx, account)
		} else if account.Email != userEmail {
			// Keep the email in sync with the identity provider
			account.Email = userEmail
			err = s.userRepo.Update(ctx, account)
		}

		return account.UUID, err
	})
	if err != nil {
		return "", "", err
	}

	return s.issueTokens(*authUser)
}

func (s *userService) RefreshAccessToken(authToken string) (string, error) {
	return s.authManager.RefreshAccessToken(authToken)
}

func (s *userService) AuthConfig() AuthConfigOut {
	return AuthConfigOut{
		NativeEnabled: s.authManager.IsNativeEnabled(),
		OpenIdEnabled: s.authManager.IsOpenIdEnabled(),
	}
}

func (s *userService) GetProfile(ctx *gin.Context, authUser auth.AuthenticatedUser) (*UserOut, error) {
	account, err := s.userRepo.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return nil, err
	}

	result := ToUserOut(*account)
	return &result, nil
}

func (s *userService) UpdateProfile(ctx *gin.Context, authUser auth.AuthenticatedUser, req ProfileUpdateIn) error {
	account, err := s.userRepo.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.SharePreference != nil {
		preference := SharePreference(*req.SharePreference)
		if !preference.IsValid() {
			return utils.ErrValidationError
		}
		account.SharePreference = preference
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return utils.ErrValidationError
		}
		passwordHash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return utils.ErrServer
		}
		account.PasswordHash = passwordHash
	}

	return s.userRepo.Update(ctx, account)
}

func (s *userService) RedeemCharge(ctx *gin.Context, authUser auth.AuthenticatedUser, req RedeemChargeIn) error {
	grant, err := s.paymentVerifier.VerifyCharge(ctx, req.ChargeToken)
	if err != nil {
		return err
	}

	account, err := s.userRepo.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return err
	}

	account.GrantedQuota += grant.ExtraModels

	return s.userRepo.Update(ctx, account)
}

func (s *userService) GetAll(ctx *gin.Context, authUser auth.AuthenticatedUser) ([]UserOut, error) {
	if !authUser.IsAdmin {
		return nil, utils.ErrAdminOnly
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(users, func(obj User, _ int) UserOut {
		return ToUserOut(obj)
	}), nil
}

func (s *userService) AdminUpdate(ctx *gin.Context, authUser auth.AuthenticatedUser, userId string, req AdminUserUpdateIn) error {
	if !authUser.IsAdmin {
		return utils.ErrAdminOnly
	}

	account, err := s.userRepo.GetByUuid(ctx, userId)
	if err != nil {
		return err
	}

	if req.GrantedQuota != nil {
		if *req.GrantedQuota < 0 {
			return utils.ErrValidationError
		}
		account.GrantedQuota = *req.GrantedQuota
	}
	if req.IsAdmin != nil {
		account.IsAdmin = *req.IsAdmin
	}

	return s.userRepo.Update(ctx, account)
}

func (s *userService) AdminStats(ctx *gin.Context, authUser auth.AuthenticatedUser) (*AdminStatsOut, error) {
	if !authUser.IsAdmin {
		return nil, utils.ErrAdminOnly
	}

	accounts, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := AdminStatsOut{TotalUsers: len(accounts)}
	for _, account := range accounts {
		if account.IsAdmin {
			stats.TotalAdmins++
		}
	}

	if s.purger != nil {
		modelCount, err := s.purger.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		stats.TotalModels = int(modelCount)
	}

	return &stats, nil
}

func (s *userService) AdminDelete(ctx *gin.Context, authUser auth.AuthenticatedUser, userId string) error {
	if !authUser.IsAdmin {
		return utils.ErrAdminOnly
	}

	account, err := s.userRepo.GetByUuid(ctx, userId)
	if err != nil {
		return err
	}

	if s.purger != nil {
		if err := s.purger.DeleteAllForCreator(ctx, account.UUID); err != nil {
			return err
		}
	}

	return s.userRepo.Delete(ctx, account)
}

func (s *userService) issueTokens(authUser auth.AuthenticatedUser) (string, string, error) {
	authToken, err := s.authManager.CreateAuthToken(authUser)
	if err != nil {
		return "", "", utils.ErrServer
	}

	accessToken, err := s.authManager.CreateAccessToken(authUser)
	if err != nil {
		return "", "", utils.ErrServer
	}

	return authToken, accessToken, nil
}
