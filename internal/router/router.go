// File: internal/router/router.go
package router

import (
	"jieum/internal/cache"
	"jieum/internal/database"
	"jieum/internal/handler"
	"jieum/internal/handler/auth"
	"jieum/internal/handler/categories"
	"jieum/internal/handler/comments"
	"jieum/internal/handler/ideas"
	"jieum/internal/handler/inquiries"
	"jieum/internal/handler/scraps"
	"jieum/internal/handler/users"
	"jieum/internal/middleware"
	"jieum/internal/model"
	"jieum/internal/service"
	"jieum/internal/worker"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Setup 註冊所有路由與中介層，順序固定為 Authenticate -> Restrict -> handler
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, issuer *service.TokenIssuer, pool worker.Pool, l *zap.Logger) {
	api := e.Group("/api")

	authn := middleware.Authenticate(issuer, l)
	members := middleware.Restrict(model.RoleMember, model.RoleAdmin)
	admins := middleware.Restrict(model.RoleAdmin)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, cch, l), authn)

	api.POST("/auth", auth.LoginHandler(db, issuer, l))

	// /me 為靜態路徑，echo 會優先於 /:id 比對
	api.GET("/users", users.ListUsersHandler(db, l), authn, admins)
	api.GET("/users/me", users.GetMeHandler(db, l), authn, members)
	api.GET("/users/:id", users.GetUserHandler(db, l), authn, admins)
	api.POST("/users", users.CreateUserHandler(db, l))
	api.PATCH("/users/:id/role", users.UpdateRoleHandler(db, l), authn, admins)
	api.PATCH("/users/:id", users.UpdateUserHandler(db, l), authn, members)
	api.DELETE("/users/:id", users.DeleteUserHandler(db, l), authn, admins)

	api.GET("/categories", categories.ListHandler(db, cch, l))
	api.POST("/categories", categories.CreateHandler(db, cch, pool, l), authn, admins)
	api.DELETE("/categories/:id", categories.DeleteHandler(db, cch, pool, l), authn, admins)

	api.GET("/ideas", ideas.ListHandler(db, l))
	api.GET("/ideas/me", ideas.ListMineHandler(db, l), authn, members)
	api.GET("/ideas/:id", ideas.GetHandler(db, l))
	api.POST("/ideas", ideas.CreateHandler(db, l), authn, members)
	api.PATCH("/ideas/:id", ideas.UpdateHandler(db, l), authn, members)
	api.PATCH("/ideas/:id/views", ideas.ViewsHandler(db, l), authn, members)
	api.PATCH("/ideas/:id/scraps", ideas.ScrapsHandler(db, l), authn, members)
	api.PATCH("/ideas/:id/comments", ideas.CommentsHandler(db, l), authn, members)
	api.DELETE("/ideas/:id", ideas.DeleteHandler(db, l), authn, members)

	api.POST("/comments", comments.CreateHandler(db, l), authn, members)
	api.DELETE("/comments/:id", comments.DeleteHandler(db, l), authn, members)

	api.GET("/scraps", scraps.ListHandler(db, l), authn, members)
	api.POST("/scraps", scraps.CreateHandler(db, l), authn, members)
	api.DELETE("/scraps/:id", scraps.DeleteHandler(db, l), authn, members)

	api.GET("/inquiries", inquiries.ListHandler(db, l), authn, admins)
	api.POST("/inquiries", inquiries.CreateHandler(db, l), authn, members)
	api.PATCH("/inquiries/:id", inquiries.UpdateStatusHandler(db, l), authn, admins)
	api.DELETE("/inquiries/:id", inquiries.DeleteHandler(db, l), authn, admins)
}
