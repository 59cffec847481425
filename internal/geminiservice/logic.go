package geminiservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Result is the outcome of one flow: either Text or Err is meaningful.
// Elapsed covers the model call only.
type Result struct {
	Text    string
	Elapsed time.Duration
	Err     error
}

// OK reports whether the flow produced text.
func (r Result) OK() bool {
	return r.Err == nil
}

// ElapsedSeconds is the latency as shown to the user.
func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// MealService runs the analysis and meal-plan flows against a ModelClient.
// It holds no per-request state.
type MealService struct {
	model ModelClient
}

func NewMealService(model ModelClient) *MealService {
	return &MealService{model: model}
}

// AnalyzeMeal builds the nutrition prompt and sends it with the photo.
// A nil image fails with ErrNoImage before any network call.
func (s *MealService) AnalyzeMeal(ctx context.Context, img *UploadedImage, preparation string) Result {
	logger := zerolog.Ctx(ctx)

	if img == nil {
		logger.Warn().Msg("Meal analysis requested without an image")
		return Result{Err: ErrNoImage}
	}

	prompt := BuildAnalysisPrompt(preparation)

	start := time.Now()
	text, err := s.model.AnalyzeImage(ctx, img.Data, img.MimeType, prompt)
	res := Result{Text: text, Elapsed: time.Since(start), Err: err}

	logResult(logger, "analyze_meal", res)
	return res
}

// GenerateMealPlan builds the 7-day meal-plan prompt from free-text
// preferences and sends it.
func (s *MealService) GenerateMealPlan(ctx context.Context, preferences string) Result {
	logger := zerolog.Ctx(ctx)
	prompt := BuildMealPlanPrompt(preferences)

	start := time.Now()
	text, err := s.model.GenerateText(ctx, prompt)
	res := Result{Text: text, Elapsed: time.Since(start), Err: err}

	logResult(logger, "meal_plan", res)
	return res
}

func logResult(logger *zerolog.Logger, flow string, res Result) {
	if !res.OK() {
		logger.Error().Err(res.Err).Str("flow", flow).Dur("elapsed", res.Elapsed).Msg("Gemini call failed")
		return
	}
	logger.Info().Str("flow", flow).Dur("elapsed", res.Elapsed).Int("response_bytes", len(res.Text)).Msg("Gemini call succeeded")
}
