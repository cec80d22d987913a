package user

import (
	"gorm.io/gorm"
)

type SharePreference string

const (
	SharePublic        SharePreference = "public"
	ShareAuthenticated SharePreference = "authenticated"
	SharePrivate       SharePreference = "private"
)

func (p SharePreference) IsValid() bool {
	switch p {
	case SharePublic, ShareAuthenticated, SharePrivate:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	UUID  string `gorm:"uniqueIndex;not null"`
	Email string `gorm:"uniqueIndex;not null"`
	Name  string
	// PasswordHash is empty for OpenID accounts
	PasswordHash string
	// Sub is the OpenID subject, empty for native accounts
	Sub     string `gorm:"index"`
	IsAdmin bool   `gorm:"not null;default:false"`
	// ModelQuota is the free-tier allowance, GrantedQuota is added on top
	// by verified charges or manual admin grants
	ModelQuota      int             `gorm:"not null;default:3"`
	GrantedQuota    int             `gorm:"not null;default:0"`
	SharePreference SharePreference `gorm:"not null;default:public"`
}

func (u *User) TotalQuota() int {
	return u.ModelQuota + u.GrantedQuota
}

type RegisterIn struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type CredentialsIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileUpdateIn struct {
	Name            *string `json:"name"`
	SharePreference *string `json:"sharePreference"`
	Password        *string `json:"password"`
}

type AdminUserUpdateIn struct {
	GrantedQuota *int  `json:"grantedQuota"`
	IsAdmin      *bool `json:"isAdmin"`
}

type RedeemChargeIn struct {
	ChargeToken string `json:"chargeToken" binding:"required"`
}

type UserOut struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	IsAdmin         bool   `json:"isAdmin"`
	ModelQuota      int    `json:"modelQuota"`
	GrantedQuota    int    `json:"grantedQuota"`
	SharePreference string `json:"sharePreference"`
}

type AdminStatsOut struct {
	TotalUsers  int `json:"totalUsers"`
	TotalAdmins int `json:"totalAdmins"`
	TotalModels int `json:"totalModels"`
}

type AuthConfigOut struct {
	NativeEnabled bool `json:"nativeEnabled"`
	OpenIdEnabled bool `json:"openIdEnabled"`
}

func ToUserOut(obj User) UserOut {
	return UserOut{
		ID:              obj.UUID,
		Email:           obj.Email,
		Name:            obj.Name,
		IsAdmin:         obj.IsAdmin,
		ModelQuota:      obj.ModelQuota,
		GrantedQuota:    obj.GrantedQuota,
		SharePreference: string(obj.SharePreference),
	}
}
