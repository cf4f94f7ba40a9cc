package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  decimal.Decimal
	IsAdmin  bool
}

type UserClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin,omitempty"`
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
