package router

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	attendancehandler "hrm_backend/internal/feature/attendance/transport/handler"
	authentity "hrm_backend/internal/feature/auth/domain/entity"
	authhandler "hrm_backend/internal/feature/auth/transport/handler"
	candidatehandler "hrm_backend/internal/feature/candidate/transport/handler"
	employeehandler "hrm_backend/internal/feature/employee/transport/handler"
	leavehandler "hrm_backend/internal/feature/leave/transport/handler"
	jwtmw "hrm_backend/internal/infrastructure/jwt"
)

// Handlers bundles the feature handlers the router wires up.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	User       *authhandler.UserHandler
	Candidate  *candidatehandler.CandidateHandler
	Employee   *employeehandler.EmployeeHandler
	Attendance *attendancehandler.AttendanceHandler
	Leave      *leavehandler.LeaveHandler
}

// NewRouter は全APIルートを組み立てます。
// 認証エンドポイント以外の人事リソースはHR/Adminロールのみがアクセスできます。
func NewRouter(h Handlers, finder jwtmw.UserFinder) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", Health)
	r.POST("/api/auth/register", h.Auth.Register)
	r.POST("/api/auth/login", h.Auth.Login)

	// 認証必須のルート
	auth := r.Group("/api")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired(finder))
	{
		auth.GET("/auth/protected", h.Auth.Protected)

		users := auth.Group("/users")
		{
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.PATCH("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
		}

		// 人事リソースは権限ロールのみ
		hr := auth.Group("/")
		hr.Use(jwtmw.RestrictTo(authentity.RoleHR, authentity.RoleAdmin))
		{
			candidates := hr.Group("/candidates")
			{
				candidates.POST("", h.Candidate.Create)
				candidates.GET("", h.Candidate.List)
				candidates.GET("/:id", h.Candidate.Get)
				candidates.PATCH("/:id", h.Candidate.UpdateStatus)
				// 旧クライアント向けエイリアス
				candidates.PATCH("/:id/status", h.Candidate.UpdateStatus)
				candidates.POST("/:id/move-to-employee", h.Candidate.MoveToEmployee)
				candidates.DELETE("/:id", h.Candidate.Delete)
				candidates.GET("/:id/resume", h.Candidate.DownloadResume)
			}

			employees := hr.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.PATCH("/:id", h.Employee.Update)
				// 旧クライアント向けエイリアス
				employees.PUT("/:id", h.Employee.Update)
				employees.PATCH("/:id/role", h.Employee.AssignRole)
				employees.DELETE("/:id", h.Employee.Delete)
			}

			attendance := hr.Group("/attendance")
			{
				attendance.GET("", h.Attendance.List)
				attendance.PATCH("/by-employee", h.Attendance.UpsertByEmployee)
				attendance.PATCH("/:id", h.Attendance.UpdateByID)
			}

			leaves := hr.Group("/leaves")
			{
				leaves.POST("", h.Leave.Create)
				leaves.GET("", h.Leave.List)
				leaves.GET("/:id", h.Leave.Get)
				leaves.PATCH("/:id", h.Leave.UpdateStatus)
				// 旧クライアント向けエイリアス
				leaves.PATCH("/:id/status", h.Leave.UpdateStatus)
				leaves.DELETE("/:id", h.Leave.Delete)
				leaves.GET("/:id/docs", h.Leave.DownloadDocs)
			}
		}
	}

	// 未定義ルートも統一エンベロープで返す
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			api.Fail(fmt.Sprintf("can't find %s on this server", c.Request.URL.Path)))
	})

	return r
}
