package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	m, err := LoadMap(cfg.MapPath)
	if err != nil {
		log.Fatalf("map: %v", err)
	}

	var svc Services
	if cfg.DBPath != "" {
		db, err := OpenDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		svc.DB = db
		svc.Analytics = NewAnalytics(db)
		svc.Auth = NewAuth(db)
		if cfg.AdminUser != "" {
			if err := svc.Auth.EnsureOperator(cfg.AdminUser, cfg.AdminPass); err != nil {
				log.Fatalf("operator: %v", err)
			}
		}
	}

	hub := NewHub(m, cfg.Tick, svc)
	go hub.Run()
	go hub.game.Run()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: cfg.Addr, Handler: SetupRoutes(hub)}

	go func() {
		log.Printf("Server starting on %s (map %s, tick %v)", cfg.Addr, cfg.MapPath, cfg.Tick)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	select {
	case <-stop:
		log.Println("Shutting down...")
	case <-hub.Done():
		log.Println("All sessions left, shutting down...")
	}
	server.Close()
	hub.game.Stop()
	svc.Analytics.Stop()
}
