package router

import (
	"ClubHub/internal/handler"
	"ClubHub/internal/middleware"
	"ClubHub/internal/pkg"
	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tokens   *pkg.TokenIssuer
	Sessions middleware.TokenStore

	Users   *service.UserService
	Clubs   *service.ClubService
	Members *service.MembershipService
	Posts   *service.PostService
	Events  *service.EventService
	Admin   *service.AdminService
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()

	user := handler.NewUserHandler(d.Users)
	club := handler.NewClubHandler(d.Clubs)
	member := handler.NewMemberHandler(d.Members)
	post := handler.NewPostHandler(d.Posts)
	event := handler.NewEventHandler(d.Events)
	admin := handler.NewAdminHandler(d.Admin)

	// no session needed
	public := r.Group("/api/user")
	{
		public.POST("/register", user.Register)
		public.POST("/login", user.Login)
		public.POST("/refresh", user.Refresh)
		public.POST("/reset/code", user.SendResetCode)
		public.POST("/reset", user.ResetPassword)
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(d.Tokens, d.Sessions))
	{
		api.POST("/user/logout", user.Logout)
		api.GET("/user/profile", user.Profile)
		api.PUT("/user/profile", user.UpdateProfile)
		api.POST("/user/password", user.ChangePassword)
		api.DELETE("/user", user.DeleteAccount)

		api.GET("/clubs", club.List)
		api.POST("/clubs", club.Create)
		api.GET("/clubs/:id", club.View)
		api.PUT("/clubs/:id", club.Update)
		api.DELETE("/clubs/:id", club.Delete)

		api.POST("/clubs/:id/join", member.Join)
		api.POST("/clubs/:id/leave", member.Leave)
		api.GET("/clubs/:id/members", member.List)
		api.PUT("/clubs/:id/members/:userID/posting", member.SetPosting)
		api.DELETE("/clubs/:id/members/:userID", member.Kick)
		api.GET("/clubs/:id/transfer", member.TransferCandidates)
		api.POST("/clubs/:id/transfer", member.Transfer)

		api.POST("/clubs/:id/posts", post.Create)
		api.DELETE("/clubs/:id/posts/:postID", post.Delete)
		api.GET("/posts/:postID", post.Get)
		api.PUT("/posts/:postID", post.Update)

		api.POST("/clubs/:id/events", event.Create)
		api.DELETE("/clubs/:id/events/:eventID", event.Delete)
		api.GET("/events/:eventID", event.Get)
		api.PUT("/events/:eventID", event.Update)
	}

	adminGroup := api.Group("/admin")
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.PUT("/users/:id/role", admin.UpdateRole)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)
		adminGroup.GET("/clubs", admin.ListClubs)
		adminGroup.DELETE("/clubs/:id", admin.DeleteClub)
	}

	return r
}
