package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kritchanat/dormdesk/internal/announcement"
	annStore "github.com/kritchanat/dormdesk/internal/announcement/store"
	"github.com/kritchanat/dormdesk/internal/auth"
	"github.com/kritchanat/dormdesk/internal/billing"
	billingStore "github.com/kritchanat/dormdesk/internal/billing/store"
	"github.com/kritchanat/dormdesk/internal/config"
	"github.com/kritchanat/dormdesk/internal/database"
	dormHttp "github.com/kritchanat/dormdesk/internal/http"
	annHandler "github.com/kritchanat/dormdesk/internal/http/announcement"
	authHandler "github.com/kritchanat/dormdesk/internal/http/auth"
	billingHandler "github.com/kritchanat/dormdesk/internal/http/billing"
	importHandler "github.com/kritchanat/dormdesk/internal/http/importcsv"
	roomHandler "github.com/kritchanat/dormdesk/internal/http/room"
	settingsHandler "github.com/kritchanat/dormdesk/internal/http/settings"
	staffHandler "github.com/kritchanat/dormdesk/internal/http/staff"
	tenantHandler "github.com/kritchanat/dormdesk/internal/http/tenant"
	"github.com/kritchanat/dormdesk/internal/importer"
	"github.com/kritchanat/dormdesk/internal/occupancy"
	occupancyStore "github.com/kritchanat/dormdesk/internal/occupancy/store"
	"github.com/kritchanat/dormdesk/internal/room"
	roomStore "github.com/kritchanat/dormdesk/internal/room/store"
	"github.com/kritchanat/dormdesk/internal/settings"
	settingsStore "github.com/kritchanat/dormdesk/internal/settings/store"
	"github.com/kritchanat/dormdesk/internal/staff"
	staffStore "github.com/kritchanat/dormdesk/internal/staff/store"
	"github.com/kritchanat/dormdesk/internal/tenant"
	tenantStore "github.com/kritchanat/dormdesk/internal/tenant/store"
	"github.com/kritchanat/dormdesk/internal/user"
	userStore "github.com/kritchanat/dormdesk/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var (
		settingsService     = settings.NewService(settingsStore.New(db))
		roomService         = room.NewService(roomStore.New(db))
		occupancyService    = occupancy.NewService(occupancyStore.New(db))
		tenantService       = tenant.NewService(tenantStore.New(db), occupancyService, roomService)
		billingService      = billing.NewService(billingStore.New(db), settingsService, cfg.Billing.DueDay)
		staffService        = staff.NewService(staffStore.New(db))
		announcementService = announcement.NewService(annStore.New(db))
		userService         = user.NewService(userStore.New(db))
		importService       = importer.NewService()
	)

	handlers := dormHttp.Handlers{
		Auth:          authHandler.NewHandler(userService, tokens),
		Rooms:         roomHandler.NewHandler(roomService),
		Tenants:       tenantHandler.NewHandler(tenantService, occupancyService, userService),
		Billing:       billingHandler.NewHandler(billingService),
		Staff:         staffHandler.NewHandler(staffService),
		Settings:      settingsHandler.NewHandler(settingsService),
		Announcements: annHandler.NewHandler(announcementService),
		Import:        importHandler.NewHandler(importService, tenantService),
	}

	router := dormHttp.New(tokens, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
