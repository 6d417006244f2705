package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jieum/internal/database"
	"jieum/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// tagTx 模擬 tags upsert：同名標籤回傳同一個 ID
func tagTx(now time.Time) (*database.FakeTx, *[][2]int) {
	links := [][2]int{}
	ids := map[string]int{}
	tx := &database.FakeTx{}
	tx.QueryRowFn = func(_ context.Context, sql string, args ...any) pgx.Row {
		switch {
		case strings.Contains(sql, "INSERT INTO ideas"):
			return &fakeRow{vals: []any{10, now}}
		case strings.Contains(sql, "INSERT INTO tags"):
			name := args[0].(string)
			// 唯一索引建在 lower(name) 上
			if strings.Contains(sql, "ON CONFLICT (lower(name))") {
				name = strings.ToLower(name)
			}
			if _, ok := ids[name]; !ok {
				ids[name] = len(ids) + 1
			}
			return &fakeRow{vals: []any{ids[name]}}
		}
		return &fakeRow{scanErr: errors.New("unexpected " + sql)}
	}
	tx.ExecFn = func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		switch {
		case strings.Contains(sql, "INSERT INTO ideas_tags"):
			links = append(links, [2]int{args[0].(int), args[1].(int)})
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		case strings.Contains(sql, "UPDATE ideas"):
			return pgconn.NewCommandTag("UPDATE 1"), nil
		case strings.Contains(sql, "DELETE FROM ideas_tags"):
			links = links[:0]
			return pgconn.NewCommandTag("DELETE 2"), nil
		}
		return pgconn.CommandTag{}, errors.New("unexpected " + sql)
	}
	return tx, &links
}

func dbWith(tx pgx.Tx) *database.FakeDB {
	return &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
}

func TestCreateIdea(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("idea and tags in one transaction", func(t *testing.T) {
		tx, links := tagTx(now)
		idea := model.Idea{WriterID: 1, CategoryID: 2, Title: "t", Content: "c"}
		require.NoError(t, CreateIdea(ctx, dbWith(tx), &idea, []string{"a", "b"}))
		require.Equal(t, 10, idea.ID)
		require.Equal(t, now, idea.CreatedAt)
		require.Equal(t, [][2]int{{10, 1}, {10, 2}}, *links)
		require.True(t, tx.Committed)
	})

	t.Run("tag names shared ignoring case", func(t *testing.T) {
		tx, links := tagTx(now)
		first := model.Idea{WriterID: 1, CategoryID: 2, Title: "t", Content: "c"}
		require.NoError(t, CreateIdea(ctx, dbWith(tx), &first, []string{"Go"}))
		second := model.Idea{WriterID: 2, CategoryID: 2, Title: "t2", Content: "c2"}
		require.NoError(t, CreateIdea(ctx, dbWith(tx), &second, []string{"go"}))
		require.Equal(t, [][2]int{{10, 1}, {10, 1}}, *links)
	})

	t.Run("no tags", func(t *testing.T) {
		tx, links := tagTx(now)
		idea := model.Idea{WriterID: 1, CategoryID: 2, Title: "t", Content: "c"}
		require.NoError(t, CreateIdea(ctx, dbWith(tx), &idea, nil))
		require.Empty(t, *links)
		require.True(t, tx.Committed)
	})

	t.Run("tag failure rolls back", func(t *testing.T) {
		tx, _ := tagTx(now)
		tx.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("link")
		}
		idea := model.Idea{WriterID: 1, CategoryID: 2, Title: "t", Content: "c"}
		require.Error(t, CreateIdea(ctx, dbWith(tx), &idea, []string{"a"}))
		require.False(t, tx.Committed)
		require.True(t, tx.RolledBack)
	})

	t.Run("unknown category", func(t *testing.T) {
		tx := &database.FakeTx{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: &pgconn.PgError{Code: pgForeignKeyViolation}}
			},
		}
		idea := model.Idea{WriterID: 1, CategoryID: 99, Title: "t", Content: "c"}
		require.ErrorIs(t, CreateIdea(ctx, dbWith(tx), &idea, nil), ErrNotFound)
		require.True(t, tx.RolledBack)
	})

	t.Run("begin error", func(t *testing.T) {
		db := &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("begin") }}
		require.Error(t, CreateIdea(ctx, db, &model.Idea{}, nil))
	})
}

func TestUpdateIdea(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	idea := model.Idea{ID: 10, CategoryID: 2, Title: "t", Content: "c"}

	t.Run("replace tags", func(t *testing.T) {
		tx, links := tagTx(now)
		require.NoError(t, UpdateIdea(ctx, dbWith(tx), &idea, []string{"x"}, true))
		require.Equal(t, [][2]int{{10, 1}}, *links)
		require.True(t, tx.Committed)
	})

	t.Run("keep tags", func(t *testing.T) {
		tx, _ := tagTx(now)
		execs := 0
		inner := tx.ExecFn
		tx.ExecFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			execs++
			return inner(ctx, sql, args...)
		}
		require.NoError(t, UpdateIdea(ctx, dbWith(tx), &idea, nil, false))
		require.Equal(t, 1, execs)
	})

	t.Run("not found", func(t *testing.T) {
		tx := &database.FakeTx{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		require.ErrorIs(t, UpdateIdea(ctx, dbWith(tx), &idea, []string{"x"}, true), ErrNotFound)
		require.True(t, tx.RolledBack)
	})
}

func TestDeleteIdea(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		var sqls []string
		tx := &database.FakeTx{
			ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
				sqls = append(sqls, sql)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, DeleteIdea(ctx, dbWith(tx), 3))
		require.Len(t, sqls, 2)
		require.Contains(t, sqls[0], "SET deleted = true")
		require.Contains(t, sqls[1], "DELETE FROM ideas_tags")
		require.True(t, tx.Committed)
	})

	t.Run("already deleted", func(t *testing.T) {
		tx := &database.FakeTx{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		require.ErrorIs(t, DeleteIdea(ctx, dbWith(tx), 3), ErrNotFound)
		require.False(t, tx.Committed)
	})
}

func TestGetIdeaWriter(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{
		QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeRow{vals: []any{4}} },
	}
	id, err := GetIdeaWriter(ctx, db, 1)
	require.NoError(t, err)
	require.Equal(t, 4, id)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &fakeRow{scanErr: pgx.ErrNoRows} }
	_, err = GetIdeaWriter(ctx, db, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustCounter(t *testing.T) {
	ctx := context.Background()
	var gotSQL string
	var gotArgs []any
	tag := pgconn.NewCommandTag("UPDATE 1")
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL, gotArgs = sql, args
			return tag, nil
		},
	}

	require.NoError(t, AdjustCounter(ctx, db, 5, model.CounterScraps, 1))
	require.Contains(t, gotSQL, "scrap_count = scrap_count + $1")
	require.Equal(t, []any{1, 5}, gotArgs)

	require.NoError(t, AdjustCounter(ctx, db, 5, model.CounterComments, -1))
	require.Contains(t, gotSQL, "comment_count = comment_count + $1")
	require.Equal(t, []any{-1, 5}, gotArgs)

	require.NoError(t, AdjustCounter(ctx, db, 5, model.CounterViews, 1))
	require.Contains(t, gotSQL, "view_count")

	require.Error(t, AdjustCounter(ctx, db, 5, model.Counter("deleted"), 1))

	tag = pgconn.NewCommandTag("UPDATE 0")
	require.ErrorIs(t, AdjustCounter(ctx, db, 5, model.CounterViews, 1), ErrNotFound)
}
