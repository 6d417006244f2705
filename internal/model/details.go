// File: internal/model/details.go
package model

// Writer 只保留對外顯示用的暱稱
type Writer struct {
	Nickname string `json:"nickname"`
}

type CategoryName struct {
	Name string `json:"name"`
}

type CommentDetails struct {
	Comment       Comment `json:"comment"`
	CommentWriter Writer  `json:"commentWriter"`
}

// IdeaDetails 為 ideas 與作者、分類、標籤、留言 join 後攤平的結果
type IdeaDetails struct {
	Idea     Idea             `json:"idea"`
	Writer   Writer           `json:"writer"`
	Category CategoryName     `json:"category"`
	Tags     []Tag            `json:"tags"`
	Comments []CommentDetails `json:"comments"`
}

type ScrapIdea struct {
	Scrap Scrap `json:"scrap"`
	Idea  Idea  `json:"idea"`
}

type InquiryUser struct {
	Inquiry Inquiry `json:"inquiry"`
	User    User    `json:"user"`
}
