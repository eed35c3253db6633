package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/helpers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/services/ai"
)

// AIController exposes the assisted event-drafting endpoints. Both fall back
// to deterministic results when no model is configured, so they never 502.
type AIController struct {
	Logger *slog.Logger
	Filler *ai.Filler
	Titler *ai.Titler
}

func NewAIController(logger *slog.Logger, filler *ai.Filler, titler *ai.Titler) *AIController {
	return &AIController{
		Logger: logger,
		Filler: filler,
		Titler: titler,
	}
}

// FillEventRequest is the request body for POST /ai/fill.
type FillEventRequest struct {
	Text     string `json:"text"`
	Timezone string `json:"timezone"`
}

// Validate implements Validator.
func (f FillEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Text) == "" {
		errs = append(errs, "text is required")
	}
	if f.Timezone != "" {
		if _, err := time.LoadLocation(f.Timezone); err != nil {
			errs = append(errs, "timezone must be a valid IANA name")
		}
	}
	return errs
}

// FillEventResponse is the data payload for POST /ai/fill (200).
type FillEventResponse struct {
	Fields *ai.FillResult `json:"fields"`
	Source string         `json:"source"`
}

// FillEventSuccessResponse is the success response envelope for POST /ai/fill (200).
type FillEventSuccessResponse struct {
	Data  FillEventResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FillEvent godoc
// @Summary Extract event fields from free text
// @Description Parses a casual Japanese message ("明日の夜渋谷で映画") into draft event fields. Uses the language model when available, otherwise local date and place heuristics. source tells which path produced the result.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FillEventRequest true "Free text and optional IANA timezone (default Asia/Tokyo)"
// @Success 200 {object} controllers.FillEventSuccessResponse "data contains extracted fields and source"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /ai/fill [post]
func (c *AIController) FillEvent(w http.ResponseWriter, r *http.Request) {
	var req FillEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tz, err := time.LoadLocation(req.Timezone)
	if req.Timezone == "" || err != nil {
		tz = time.FixedZone("JST", 9*60*60)
	}
	fields, source := c.Filler.Fill(r.Context(), req.Text, tz)
	helpers.WriteJSONSuccess(w, http.StatusOK, FillEventResponse{Fields: fields, Source: source})
}

// GenerateTitleRequest is the request body for POST /ai/title.
type GenerateTitleRequest struct {
	What        string   `json:"what"`
	Where       string   `json:"where"`
	Tags        []string `json:"tags"`
	Capacity    string   `json:"capacity"`
	Fee         string   `json:"fee"`
	Description string   `json:"description"`
}

// Validate implements Validator.
func (g GenerateTitleRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(g.What) == "" {
		errs = append(errs, "what is required")
	}
	if strings.TrimSpace(g.Where) == "" {
		errs = append(errs, "where is required")
	}
	return errs
}

// GenerateTitleResponse is the data payload for POST /ai/title (200).
type GenerateTitleResponse struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

// GenerateTitleSuccessResponse is the success response envelope for POST /ai/title (200).
type GenerateTitleSuccessResponse struct {
	Data  GenerateTitleResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// GenerateTitle godoc
// @Summary Generate an event title
// @Description Builds a catchy Japanese title from what/where plus optional tags, capacity, and fee. Model output that fails the length and content checks is replaced by a composed fallback title.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateTitleRequest true "Title inputs"
// @Success 200 {object} controllers.GenerateTitleSuccessResponse "data contains title and source"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /ai/title [post]
func (c *AIController) GenerateTitle(w http.ResponseWriter, r *http.Request) {
	var req GenerateTitleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	title, source := c.Titler.Generate(r.Context(), ai.TitleInput{
		What:        req.What,
		Where:       req.Where,
		Tags:        req.Tags,
		Capacity:    req.Capacity,
		Fee:         req.Fee,
		Description: req.Description,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, GenerateTitleResponse{Title: title, Source: source})
}
