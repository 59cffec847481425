package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// MealPlanRequest is accepted as JSON or as a form body.
type MealPlanRequest struct {
	Preferences string `json:"preferences" form:"preferences"`
}

type AnalyzeResponse struct {
	Analysis       string  `json:"analysis"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type MealPlanResponse struct {
	MealPlan       string  `json:"meal_plan"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	DownloadURL    string  `json:"download_url"`
}

/*=================================================================================
									HANDLERS
=================================================================================*/

func (s *Server) apiAnalyzeHandler(c echo.Context) error {
	img, err := readUpload(c)
	if err != nil {
		loggerFrom(c).Warn().Err(err).Msg("Rejected meal photo upload")
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}

	res := s.meals.AnalyzeMeal(c.Request().Context(), img, c.FormValue("prep"))
	if !res.OK() {
		return c.JSON(statusFor(res.Err), map[string]string{"error": res.Err.Error()})
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{
		Analysis:       res.Text,
		ElapsedSeconds: res.ElapsedSeconds(),
	})
}

func (s *Server) apiMealPlanHandler(c echo.Context) error {
	var req MealPlanRequest
	if err := c.Bind(&req); err != nil {
		loggerFrom(c).Error().Err(err).Msg("Failed to bind request body")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	res := s.meals.GenerateMealPlan(c.Request().Context(), req.Preferences)
	if !res.OK() {
		return c.JSON(statusFor(res.Err), map[string]string{"error": res.Err.Error()})
	}

	return c.JSON(http.StatusOK, MealPlanResponse{
		MealPlan:       res.Text,
		ElapsedSeconds: res.ElapsedSeconds(),
		DownloadURL:    downloadURL(s.plans.Put(res.Text)),
	})
}
