// File: internal/handler/ideas/counters.go
package ideas

import (
	"errors"
	"net/http"

	"jieum/internal/api"
	"jieum/internal/database"
	"jieum/internal/handler"
	"jieum/internal/model"
	"jieum/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type counterMessages struct {
	added      string
	subtracted string
	failed     string
}

var (
	viewMessages = counterMessages{
		added:  "성공적으로 조회수가 추가되었습니다.",
		failed: "아이디어 조회수 수정 중 서버 에러가 발생했습니다.",
	}
	scrapMessages = counterMessages{
		added:      "성공적으로 스크랩수가 추가되었습니다.",
		subtracted: "성공적으로 스크랩수가 감소되었습니다.",
		failed:     "아이디어 스크랩수 수정 중 서버 에러가 발생했습니다.",
	}
	commentMessages = counterMessages{
		added:      "성공적으로 댓글수가 추가되었습니다.",
		subtracted: "성공적으로 댓글수가 감소되었습니다.",
		failed:     "아이디어 댓글수 수정 중 서버 에러가 발생했습니다.",
	}
)

// ViewsHandler 瀏覽數 +1，不需要 body
func ViewsHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		return adjust(c, db, l, id, model.CounterViews, 1, viewMessages)
	}
}

// ScrapsHandler 依 action 將 scrap_count 加一或減一
func ScrapsHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return actionHandler(db, l, model.CounterScraps, scrapMessages)
}

// CommentsHandler 依 action 將 comment_count 加一或減一
func CommentsHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return actionHandler(db, l, model.CounterComments, commentMessages)
}

func actionHandler(db database.DB, l *zap.Logger, counter model.Counter, msgs counterMessages) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		var req api.CounterRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}
		delta := 1
		if req.Action == "sub" {
			delta = -1
		}
		return adjust(c, db, l, id, counter, delta, msgs)
	}
}

func adjust(c echo.Context, db database.DB, l *zap.Logger, id int, counter model.Counter, delta int, msgs counterMessages) error {
	switch err := adjustCounter(c.Request().Context(), db, id, counter, delta); {
	case errors.Is(err, store.ErrNotFound):
		return handler.Fail(c, http.StatusNotFound, msgUpdateNotFound)
	case err != nil:
		l.Error("failed to adjust counter", zap.Int("idea_id", id), zap.String("counter", string(counter)), zap.Error(err))
		return handler.Fail(c, http.StatusInternalServerError, msgs.failed)
	}
	msg := msgs.added
	if delta < 0 {
		msg = msgs.subtracted
	}
	return c.JSON(http.StatusOK, api.MessageResponse{Message: msg})
}
