package api

// LoginRequest 登入表單
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
}

// CreateUserRequest 也用於個人資料修改
type CreateUserRequest struct {
	Nickname string `json:"nickname" validate:"required,notblank"`
	LoginID  string `json:"loginId" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

type IdeaListQuery struct {
	Category string `query:"category" validate:"omitempty,notblank"`
	Search   string `query:"search"`
	Sort     string `query:"sort" validate:"omitempty,oneof=views scraps comments latest"`
}

type IdeaInput struct {
	CategoryID int    `json:"categoryId" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,notblank"`
	Content    string `json:"content" validate:"required,notblank"`
}

type TagInput struct {
	Name string `json:"name"`
}

// IdeaRequest 建立與修改 idea 共用
type IdeaRequest struct {
	Idea IdeaInput  `json:"idea"`
	Tags []TagInput `json:"tags"`
}

// TagNames 取出原始標籤名稱，正規化交給 service.NormalizeTags
func (r IdeaRequest) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return names
}

type CounterRequest struct {
	Action string `json:"action" validate:"required,oneof=add sub"`
}

type CommentRequest struct {
	IdeaID  int    `json:"ideaId" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,notblank"`
}

type ScrapRequest struct {
	IdeaID int `json:"ideaId" validate:"required,gt=0"`
}

type InquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing completed"`
}
