package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "decision-engine/docs"
	"decision-engine/internal/authz"
	"decision-engine/internal/config"
	"decision-engine/internal/domain/decision"
	"decision-engine/internal/domain/identity"
	api "decision-engine/internal/http"
	"decision-engine/internal/metrics"
	"decision-engine/internal/platform/database"
	jwtpkg "decision-engine/internal/platform/jwt"
	"decision-engine/internal/repository/postgres"
	"decision-engine/internal/worker"
)

// @title           Decision & Voting Engine API
// @version         1.0
// @description     Role-gated decisions with plurality, scored and ranked-choice tallying
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	metrics.Register()

	accountRepo := postgres.NewAccountRepo(db)
	decisionRepo := postgres.NewDecisionRepo(db)
	ballotRepo := postgres.NewBallotRepo(db)

	policy := authz.NewPolicy(cfg.GovernanceTeacherVote)
	identitySvc := identity.NewService(accountRepo)
	decisionSvc := decision.NewService(policy, decisionRepo, ballotRepo)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, "")

	ballotCh := make(chan worker.BallotEvent, 100)
	eventWorker := worker.NewBallotEventWorker(ballotCh)
	sweeper := worker.NewSweeper(decisionSvc, cfg.SweepInterval)

	router := api.NewRouter(decisionSvc, identitySvc, jwtMgr, ballotCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go eventWorker.Run(ctx)
	go sweeper.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
