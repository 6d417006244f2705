package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// CustomValidator wraps go-playground/validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// MaxPasswordBytes 為 bcrypt 可處理的輸入上限，以 byte 計算
const MaxPasswordBytes = 72

// NewValidator 建立註冊了 notblank、bcryptmax 規則的 validator
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("bcryptmax", bcryptMax)
	return &CustomValidator{validator: v}
}

// bcryptMax 以 byte 長度檢查，內建 max 計算的是 rune 數
func bcryptMax(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPasswordBytes
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var fieldMessages = map[string]string{
	"LoginID":    "유효한 아이디를 입력해주세요. (영문, 숫자만 가능)",
	"Password":   "비밀번호는 8자 이상, 72바이트 이하로 입력해주세요.",
	"Nickname":   "닉네임을 입력해주세요.",
	"Role":       "유효한 역할을 지정해주세요. (회원 또는 관리자)",
	"Name":       "카테고리 이름을 입력하세요.",
	"CategoryID": "올바른 카테고리 ID를 입력하세요.",
	"Title":      "제목과 내용을 모두 입력해주세요.",
	"Content":    "내용을 입력하세요.",
	"Action":     "올바른 Action을 입력하세요. (add 또는 sub)",
	"Sort":       "올바른 정렬 기준을 선택해주세요.",
	"Category":   "카테고리는 빈 문자열이 아닌 문자열만 가능합니다.",
	"IdeaID":     "올바른 아이디어 ID를 입력하세요.",
	"Status":     "올바른 상태를 입력하세요.",
}

// DefaultValidationMessage 用於無法對應到欄位的驗證錯誤
const DefaultValidationMessage = "잘못된 요청입니다."

// ValidationMessage 取第一個失敗欄位對應的訊息
func ValidationMessage(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		if msg, ok := fieldMessages[errs[0].Field()]; ok {
			return msg
		}
	}
	return DefaultValidationMessage
}
