package main

import (
	"context"
	"log/slog"
	"os"

	"ClubHub/internal/config"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"
	"ClubHub/internal/repository/redis"
	"ClubHub/internal/router"
	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	gin.SetMode(cfg.GinMode)

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		slog.Error("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
		os.Exit(1)
	}

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		slog.Error("mysql connect failed", "error", err)
		os.Exit(1)
	}
	if err := mysql.Migrate(db); err != nil {
		slog.Error("mysql migrate failed", "error", err)
		os.Exit(1)
	}

	rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	sessions := &redis.SessionRepository{Client: rdb, TTL: cfg.JWT.AccessTTL}
	codes := &redis.CodeRepository{Client: rdb, TTL: redis.DefaultCodeTTL}

	// activity events are optional
	activity := service.NewActivityRecorder(nil)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer producer.Close()
		activity = service.NewActivityRecorder(producer)
	}

	var mailer pkg.Mailer
	if cfg.SMTP.Host != "" {
		mailer = pkg.NewSMTPMailer(pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		slog.Warn("SMTP_HOST not set, password reset codes are disabled")
	}

	tokens := pkg.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	users := service.NewUserService(db, service.UserDeps{
		Tokens:   tokens,
		Sessions: sessions,
		Codes:    codes,
		Mailer:   mailer,
		Activity: activity,
	})
	if err := users.EnsureSuperAdmin(context.Background(), cfg.SuperAdmin.Username, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password); err != nil {
		slog.Error("superadmin seed failed", "error", err)
		os.Exit(1)
	}

	r := router.InitRouter(router.Deps{
		Tokens:   tokens,
		Sessions: sessions,
		Users:    users,
		Clubs:    service.NewClubService(db, activity),
		Members:  service.NewMembershipService(db, activity),
		Posts:    service.NewPostService(db),
		Events:   service.NewEventService(db),
		Admin:    service.NewAdminService(db, sessions, activity),
	})

	slog.Info("server starting", "addr", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
