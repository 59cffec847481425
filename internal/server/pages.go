package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"

	"NutriAI/internal/geminiservice"
	"NutriAI/internal/planstore"
	"github.com/labstack/echo/v4"
)

const (
	tabAnalyze = "analyze"
	tabPlan    = "plan"
)

// errBadUpload marks a multipart body that could not be read.
var errBadUpload = errors.New("could not read uploaded image")

// PageData is everything index.html needs to render either tab.
type PageData struct {
	Tab          string
	DownloadName string

	// Analyze tab
	Preparation   string
	Thumbnail     template.URL
	Analysis      *ResultView
	AnalysisError string

	// Meal plan tab
	Preferences string
	Plan        *ResultView
	PlanError   string
}

// ResultView is a model response ready for display.
type ResultView struct {
	Text        string
	Elapsed     string
	DownloadURL string
}

func newPage(tab string) PageData {
	return PageData{Tab: tab, DownloadName: planstore.FileName}
}

func newResultView(res geminiservice.Result) *ResultView {
	return &ResultView{
		Text:    res.Text,
		Elapsed: fmt.Sprintf("%.2f", res.ElapsedSeconds()),
	}
}

func downloadURL(id string) string {
	return "/meal-plan/" + id + "/download"
}

// statusFor maps a flow error to the HTTP status of the rendered response.
func statusFor(err error) int {
	switch {
	case errors.Is(err, geminiservice.ErrNoImage), errors.Is(err, errBadUpload):
		return http.StatusBadRequest
	case errors.Is(err, geminiservice.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadGateway
	}
}

// readUpload returns the "image" form file, or nil when none was sent.
func readUpload(c echo.Context) (*geminiservice.UploadedImage, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}

	data, err := readFormFile(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}

	return geminiservice.NewUploadedImage(data, fh.Header.Get(echo.HeaderContentType))
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

/* ====================================================================
                   		Page Handlers
==================================================================== */

func (s *Server) indexHandler(c echo.Context) error {
	tab := tabAnalyze
	if c.QueryParam("tab") == tabPlan {
		tab = tabPlan
	}
	return c.Render(http.StatusOK, "index.html", newPage(tab))
}

// analyzeHandler runs the analysis flow for one submitted photo and renders
// the result, or the error, on the analyze tab.
func (s *Server) analyzeHandler(c echo.Context) error {
	logger := loggerFrom(c)
	data := newPage(tabAnalyze)
	data.Preparation = c.FormValue("prep")

	img, err := readUpload(c)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected meal photo upload")
		data.AnalysisError = err.Error()
		return c.Render(statusFor(err), "index.html", data)
	}
	if img != nil {
		data.Thumbnail = template.URL(img.DataURI())
	}

	res := s.meals.AnalyzeMeal(c.Request().Context(), img, data.Preparation)
	if !res.OK() {
		data.AnalysisError = res.Err.Error()
		return c.Render(statusFor(res.Err), "index.html", data)
	}

	data.Analysis = newResultView(res)
	return c.Render(http.StatusOK, "index.html", data)
}

// mealPlanHandler runs the meal-plan flow and keeps the text for download.
func (s *Server) mealPlanHandler(c echo.Context) error {
	data := newPage(tabPlan)
	data.Preferences = c.FormValue("preferences")

	res := s.meals.GenerateMealPlan(c.Request().Context(), data.Preferences)
	if !res.OK() {
		data.PlanError = res.Err.Error()
		return c.Render(statusFor(res.Err), "index.html", data)
	}

	data.Plan = newResultView(res)
	data.Plan.DownloadURL = downloadURL(s.plans.Put(res.Text))
	return c.Render(http.StatusOK, "index.html", data)
}

// downloadPlanHandler serves a stored plan as a plain-text attachment.
func (s *Server) downloadPlanHandler(c echo.Context) error {
	text, ok := s.plans.Get(c.Param("id"))
	if !ok {
		loggerFrom(c).Info().Str("plan_id", c.Param("id")).Msg("Meal plan not found or evicted")
		return c.String(http.StatusNotFound, "Meal plan not found or expired. Please generate a new one.")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", planstore.FileName))
	return c.Blob(http.StatusOK, planstore.ContentType, []byte(text))
}
