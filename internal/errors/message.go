package errors

// 사용자에게 노출되는 에러 메시지
var userMessages = map[ErrorCode]string{
	ErrInvalidEmail:      "잘못된 이메일 형식입니다.",
	ErrEmailAlreadyInUse: "이미 사용 중인 이메일입니다.",
	ErrWeakPassword:      "비밀번호는 6자 이상이어야 합니다.",
	ErrWrongCredentials:  "이메일 혹은 비밀번호가 일치하지 않습니다.",
	ErrUserNotFound:      "사용자를 찾을 수 없습니다.",
	ErrNetwork:           "네트워크 연결에 실패 하였습니다.",
	ErrUserDisabled:      "해당 계정은 비활성화되어 있습니다.",
	ErrTokenExpired:      "로그인이 만료되었습니다. 다시 로그인해주세요.",
	ErrMissingToken:      "인증 정보가 없습니다. 다시 로그인해주세요.",
	ErrResourceNotFound:  "요청한 데이터를 찾을 수 없습니다.",
	ErrMalformedRecord:   "데이터를 불러오지 못했습니다. 다시 시도해주세요.",
}

// UserMessage 返回展示给用户的本地化错误信息
func (c ErrorCode) UserMessage() string {
	if msg, ok := userMessages[c]; ok {
		return msg
	}
	return "알 수 없는 오류가 발생했습니다. 다시 시도해주세요."
}

// UserMessage of an arbitrary error, via its classified code.
func UserMessage(err error) string {
	return CodeOf(err).UserMessage()
}
