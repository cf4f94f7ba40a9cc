package converter

import (
	dto "wingo_backend/internal/api/dto/auth"
	"wingo_backend/internal/model"
)

// RegisterRequestToUserModel - конвертирует запрос регистрации в модель пользователя
func RegisterRequestToUserModel(r *dto.RegisterRequest) *model.User {
	return &model.User{
		Name:     r.Name,
		Login:    r.Login,
		Password: r.Password,
	}
}

// LoginRequestToUserModel - конвертирует запрос входа в модель пользователя
func LoginRequestToUserModel(r *dto.LoginRequest) *model.User {
	return &model.User{
		Login:    r.Login,
		Password: r.Password,
	}
}
