package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/api/handlers"
	"github.com/cla-bangladesh/cla-portal/api/scheduler"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/logging"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()
	if os.Getenv("ENV") == "production" {
		zap.ReplaceGlobals(logging.New().Desugar())
	}

	if err := a.Initialize(); err != nil { //initialize orchestrator and router
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(a.Orchestrator)
	s.Start()
	defer s.Stop()

	port := a.Config.Port
	if port == "" {
		port = "8080"
	}
	zap.S().Infow("cla-portal is up and running",
		"port", port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
