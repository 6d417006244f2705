package api

// ErrorResponse 全域錯誤響應模型
type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse 建立資源後回傳新 ID
type CreatedResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
