package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"hrm_backend/internal/app/router"
	attendanceadapters "hrm_backend/internal/feature/attendance/adapters"
	attendancehandler "hrm_backend/internal/feature/attendance/transport/handler"
	attendanceusecase "hrm_backend/internal/feature/attendance/usecase"
	authadapters "hrm_backend/internal/feature/auth/adapters"
	authhandler "hrm_backend/internal/feature/auth/transport/handler"
	authusecase "hrm_backend/internal/feature/auth/usecase"
	candidateadapters "hrm_backend/internal/feature/candidate/adapters"
	candidatehandler "hrm_backend/internal/feature/candidate/transport/handler"
	candidateusecase "hrm_backend/internal/feature/candidate/usecase"
	employeeadapters "hrm_backend/internal/feature/employee/adapters"
	employeehandler "hrm_backend/internal/feature/employee/transport/handler"
	employeeusecase "hrm_backend/internal/feature/employee/usecase"
	leaveadapters "hrm_backend/internal/feature/leave/adapters"
	leavehandler "hrm_backend/internal/feature/leave/transport/handler"
	leaveusecase "hrm_backend/internal/feature/leave/usecase"
	"hrm_backend/internal/infrastructure/cache"
	infradb "hrm_backend/internal/infrastructure/db"
	jwtmw "hrm_backend/internal/infrastructure/jwt"
	infraredis "hrm_backend/internal/infrastructure/redis"
	"hrm_backend/internal/infrastructure/storage"
)

func main() {
	// .env（存在しない場合は環境変数のみで動作）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// アップロード保存先
	files, err := storage.NewLocalStore(os.Getenv("UPLOAD_DIR"))
	if err != nil {
		log.Fatal("failed to prepare upload dir:", err)
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokens := jwtmw.NewGenerator(secret, jwtmw.DefaultExpiration)

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	candidateRepo := candidateadapters.NewCandidateMySQL(db)
	employeeRepo := employeeadapters.NewEmployeeMySQL(db)
	attendanceRepo := attendanceadapters.NewAttendanceMySQL(db)
	leaveRepo := leaveadapters.NewLeaveMySQL(db)

	// 従業員一覧をRedisキャッシュでラップ
	cachedEmployeeRepo := cache.NewCachingEmployeeRepository(rdb, 5*time.Minute, employeeRepo, "employees")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	userUC := authusecase.NewUserUsecase(userRepo)
	candidateUC := candidateusecase.NewCandidateUsecase(candidateRepo, employeeRepo)
	employeeUC := employeeusecase.NewEmployeeUsecase(cachedEmployeeRepo)
	attendanceUC := attendanceusecase.NewAttendanceUsecase(attendanceRepo, employeeRepo)
	leaveUC := leaveusecase.NewLeaveUsecase(leaveRepo, employeeRepo)

	// Handler
	h := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		User:       authhandler.NewUserHandler(userUC),
		Candidate:  candidatehandler.NewCandidateHandler(candidateUC, files),
		Employee:   employeehandler.NewEmployeeHandler(employeeUC),
		Attendance: attendancehandler.NewAttendanceHandler(attendanceUC),
		Leave:      leavehandler.NewLeaveHandler(leaveUC, files),
	}

	// ルータ生成
	r := router.NewRouter(h, userRepo)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
