/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the meal
analysis service and plan store into the echo router.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"NutriAI/internal/config"
	"NutriAI/internal/geminiservice"
	"NutriAI/internal/planstore"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// cfg is the immutable startup configuration.
	cfg *config.Config

	// meals runs the analysis and meal-plan flows.
	meals *geminiservice.MealService

	// plans keeps generated meal plans for download.
	plans *planstore.Store
}

// NewServer initializes a new Server instance and returns a configured *http.Server.
// WriteTimeout has to outlast the slowest model call.
func NewServer(cfg *config.Config, model geminiservice.ModelClient) (*http.Server, error) {
	plans, err := planstore.New(cfg.PlanCacheSize)
	if err != nil {
		return nil, err
	}

	newApp := &Server{
		cfg:   cfg,
		meals: geminiservice.NewMealService(model),
		plans: plans,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newApp.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	return server, nil
}
