package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jieum/internal/database"
	"jieum/internal/model"
)

// IdeaFilter 為 idea 列表的查詢條件，零值代表不過濾
type IdeaFilter struct {
	Category string
	Search   string
	WriterID int
	Sort     string
}

var sortColumns = map[string]string{
	"views":    "i.view_count",
	"scraps":   "i.scrap_count",
	"comments": "i.comment_count",
	"latest":   "i.created_at",
}

// likeEscaper 讓搜尋字串中的 % _ \ 以字面比對
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

const ideaDetailsSelect = `SELECT
	i.id, i.writer_id, i.category_id, i.title, i.content, i.created_at,
	i.view_count, i.scrap_count, i.comment_count, i.deleted,
	w.nickname, c.name,
	t.id, t.name,
	cm.id, cm.writer_id, cm.content, cm.created_at, cw.nickname
FROM ideas i
JOIN users w ON w.id = i.writer_id
JOIN categories c ON c.id = i.category_id
LEFT JOIN ideas_tags it ON it.idea_id = i.id
LEFT JOIN tags t ON t.id = it.tag_id
LEFT JOIN comments cm ON cm.idea_id = i.id
LEFT JOIN users cw ON cw.id = cm.writer_id
WHERE i.deleted = false`

// buildIdeaDetailsQuery 組出 SQL 與參數；排序欄位只從 sortColumns 取得
func buildIdeaDetailsQuery(f IdeaFilter, ideaID int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(ideaDetailsSelect)
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if ideaID > 0 {
		sb.WriteString(" AND i.id = " + next(ideaID))
	}
	if f.WriterID > 0 {
		sb.WriteString(" AND i.writer_id = " + next(f.WriterID))
	}
	if f.Category != "" {
		sb.WriteString(" AND c.name = " + next(f.Category))
	}
	if f.Search != "" {
		p := next("%" + likeEscaper.Replace(f.Search) + "%")
		sb.WriteString(" AND (i.title ILIKE " + p + ` ESCAPE '\'` +
			" OR EXISTS (SELECT 1 FROM ideas_tags sit JOIN tags st ON st.id = sit.tag_id" +
			" WHERE sit.idea_id = i.id AND st.name ILIKE " + p + ` ESCAPE '\'))`)
	}

	col, ok := sortColumns[f.Sort]
	if !ok {
		col = sortColumns["latest"]
	}
	sb.WriteString(" ORDER BY " + col + " DESC, i.id DESC, t.id, cm.created_at, cm.id")
	return sb.String(), args
}

// ListIdeaDetails 回傳符合條件的 idea 與其作者、分類、標籤、留言
func ListIdeaDetails(ctx context.Context, db database.Querier, f IdeaFilter) ([]model.IdeaDetails, error) {
	query, args := buildIdeaDetailsQuery(f, 0)
	details, err := queryIdeaDetails(ctx, db, query, args)
	if err != nil {
		return nil, fmt.Errorf("ListIdeaDetails: %w", err)
	}
	return details, nil
}

func GetIdeaDetails(ctx context.Context, db database.Querier, id int) (*model.IdeaDetails, error) {
	query, args := buildIdeaDetailsQuery(IdeaFilter{}, id)
	details, err := queryIdeaDetails(ctx, db, query, args)
	if err != nil {
		return nil, fmt.Errorf("GetIdeaDetails: %w", err)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("GetIdeaDetails: %w", ErrNotFound)
	}
	return &details[0], nil
}

// queryIdeaDetails 把 join 後每列一個 (idea, tag, comment) 組合攤平成每個 idea 一筆
func queryIdeaDetails(ctx context.Context, db database.Querier, query string, args []any) ([]model.IdeaDetails, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []model.IdeaDetails{}
	index := map[int]int{}
	seenTags := map[int]map[int]struct{}{}
	seenComments := map[int]map[int]struct{}{}

	for rows.Next() {
		var (
			idea          model.Idea
			writer        string
			category      string
			tagID         *int
			tagName       *string
			commentID     *int
			commentWriter *int
			content       *string
			createdAt     *time.Time
			commentNick   *string
		)
		if err := rows.Scan(
			&idea.ID, &idea.WriterID, &idea.CategoryID, &idea.Title, &idea.Content, &idea.CreatedAt,
			&idea.ViewCount, &idea.ScrapCount, &idea.CommentCount, &idea.Deleted,
			&writer, &category,
			&tagID, &tagName,
			&commentID, &commentWriter, &content, &createdAt, &commentNick,
		); err != nil {
			return nil, err
		}

		pos, ok := index[idea.ID]
		if !ok {
			details = append(details, model.IdeaDetails{
				Idea:     idea,
				Writer:   model.Writer{Nickname: writer},
				Category: model.CategoryName{Name: category},
				Tags:     []model.Tag{},
				Comments: []model.CommentDetails{},
			})
			pos = len(details) - 1
			index[idea.ID] = pos
			seenTags[idea.ID] = map[int]struct{}{}
			seenComments[idea.ID] = map[int]struct{}{}
		}
		d := &details[pos]

		if tagID != nil && tagName != nil {
			if _, dup := seenTags[idea.ID][*tagID]; !dup {
				seenTags[idea.ID][*tagID] = struct{}{}
				d.Tags = append(d.Tags, model.Tag{ID: *tagID, Name: *tagName})
			}
		}
		if commentID != nil {
			if _, dup := seenComments[idea.ID][*commentID]; !dup {
				seenComments[idea.ID][*commentID] = struct{}{}
				cd := model.CommentDetails{Comment: model.Comment{ID: *commentID, IdeaID: idea.ID}}
				if commentWriter != nil {
					cd.Comment.WriterID = *commentWriter
				}
				if content != nil {
					cd.Comment.Content = *content
				}
				if createdAt != nil {
					cd.Comment.CreatedAt = *createdAt
				}
				if commentNick != nil {
					cd.CommentWriter.Nickname = *commentNick
				}
				d.Comments = append(d.Comments, cd)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
