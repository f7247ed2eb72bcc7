package util

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsValidEmail 验证邮箱格式
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// IsPasswordStrong 验证密码强度（最少6位，与后端口径一致）
func IsPasswordStrong(password string) bool {
	return validate.Var(password, "required,min=6") == nil
}
