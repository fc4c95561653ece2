package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ammarbari/attendance-app/internal/config"
	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	appHTTP "github.com/ammarbari/attendance-app/internal/handler/http"
	"github.com/ammarbari/attendance-app/internal/pkg/clockutil"
	"github.com/ammarbari/attendance-app/internal/pkg/cron"
	"github.com/ammarbari/attendance-app/internal/pkg/database"
	"github.com/ammarbari/attendance-app/internal/pkg/facerec"
	"github.com/ammarbari/attendance-app/internal/pkg/jwt"
	"github.com/ammarbari/attendance-app/internal/pkg/oauth"
	"github.com/ammarbari/attendance-app/internal/pkg/sse"
	"github.com/ammarbari/attendance-app/internal/pkg/upstream"
	"github.com/ammarbari/attendance-app/internal/repository/memory"
	"github.com/ammarbari/attendance-app/internal/repository/postgresql"
	attendanceService "github.com/ammarbari/attendance-app/internal/service/attendance"
	authService "github.com/ammarbari/attendance-app/internal/service/auth"
	faceService "github.com/ammarbari/attendance-app/internal/service/face"
	statsService "github.com/ammarbari/attendance-app/internal/service/stats"
	syncService "github.com/ammarbari/attendance-app/internal/service/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	clock := clockutil.NewRealClock()
	hub := sse.NewHub()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	faceRepo := postgresql.NewFaceRepository(db)

	var queue syncdomain.Queue
	if cfg.Sync.DurableQueue {
		queue = postgresql.NewSyncQueueRepository(db)
	} else {
		queue = memory.NewSyncQueue()
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	upstreamClient := upstream.NewClient(cfg.Sync.UpstreamURL, 10*time.Second)
	faceProvider := facerec.NewClient(cfg.Face.ProviderURL, 10*time.Second)

	authSvc := authService.NewAuthService(userRepo, jwtSvc, googleSvc)
	faceSvc := faceService.NewFaceService(faceRepo, faceProvider, clock, cfg.Face.MatchThreshold)
	syncSvc := syncService.NewSyncService(queue, upstreamClient, attendanceRepo, hub, clock, slog.Default())
	attendanceSvc, err := attendanceService.NewAttendanceService(
		attendanceRepo,
		faceSvc,
		syncSvc,
		clock,
		cfg.Schedule,
		cfg.Geofence,
		cfg.Face.Enabled,
	)
	if err != nil {
		fmt.Println("Error building attendance service:", err)
		return
	}
	statsSvc := statsService.NewStatsService(attendanceRepo, clock)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtSvc, cfg.App.FrontendURL),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Face:       appHTTP.NewFaceHandler(faceSvc),
		Stats:      appHTTP.NewStatsHandler(statsSvc),
		Sync:       appHTTP.NewSyncHandler(syncSvc),
		Events:     appHTTP.NewEventsHandler(hub, jwtSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtSvc, handlers)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("drain_sync_queue", cfg.Sync.Interval, syncSvc.Drain)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
