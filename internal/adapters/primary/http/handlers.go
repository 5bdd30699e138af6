package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// multipart parsing keeps this much in memory before spilling to disk
const multipartMemory = 8 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// HealthResponse reports backend availability
type HealthResponse struct {
	Status    string `json:"status"`
	Generator string `json:"generator"`
	Renderer  string `json:"renderer"`
}

// GenerateResponse is returned by POST /api/generate and the result event
// of the generation socket
type GenerateResponse struct {
	Success      bool                   `json:"success"`
	ID           string                 `json:"id"`
	Presentation *entities.Presentation `json:"presentation"`
	Markup       string                 `json:"markup"`
	Theme        string                 `json:"theme"`
	Slides       []ports.RenderedSlide  `json:"slides,omitempty"`
	DemoMode     bool                   `json:"demoMode"`
	Generator    string                 `json:"generator"`
	GeneratedAt  time.Time              `json:"generatedAt"`
	Message      string                 `json:"message"`
}

// RenderRequest is the body of POST /api/render
type RenderRequest struct {
	Markdown string `json:"markdown"`
	Theme    string `json:"theme"`
	Format   string `json:"format"`
}

// handleHealth reports whether the generator and renderer can be used
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	renderer := "available"
	if err := s.deck.RendererStatus(r.Context()); err != nil {
		renderer = "unavailable"
	}

	s.writeJSON(w, HealthResponse{
		Status:    "ok",
		Generator: s.deck.GeneratorName(),
		Renderer:  renderer,
	})
}

// handleOptions returns the style catalogue and option enumerations
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.deck.Options())
}

// handleStats reports generation and render counters
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.monitor.Snapshot()
	stats.ActiveSessions = s.sessions.Count()
	s.writeJSON(w, stats)
}

// handleGenerate accepts a multipart upload and returns the generated deck
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.config.GetMaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleError(w, err, http.StatusRequestEntityTooLarge)
			return
		}
		s.handleError(w, fmt.Errorf("parsing multipart form: %w", err), http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, fmt.Errorf("reading upload: %w", err), http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		s.handleError(w, fmt.Errorf("upload of %d bytes exceeds limit", header.Size), http.StatusRequestEntityTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.handleError(w, fmt.Errorf("reading upload: %w", err), http.StatusBadRequest)
		return
	}

	forceDemo, _ := strconv.ParseBool(r.FormValue("demo"))

	req := ports.GenerateRequest{
		FileName: header.Filename,
		Data:     data,
		Options: entities.TransformOptions{
			ContentDensity: entities.ContentDensity(r.FormValue("contentDensity")),
			TargetAudience: entities.TargetAudience(r.FormValue("targetAudience")),
			VisualStyle:    r.FormValue("visualStyle"),
		},
		ForceDemo: forceDemo,
	}

	start := time.Now()
	result, err := s.deck.Generate(r.Context(), req, func(message string) {
		s.logger.Debug("generation status", slog.String("file", header.Filename), slog.String("status", message))
	})
	s.recordGeneration(start, result, err)
	if err != nil {
		s.handleError(w, err, statusForError(err))
		return
	}

	s.writeJSON(w, s.generateResponse(result, header.Filename))
}

// handleRender converts markup into a downloadable PDF or HTML file
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.GetMaxUploadBytes())

	var body RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.handleError(w, fmt.Errorf("decoding render request: %w", err), http.StatusBadRequest)
		return
	}

	if body.Markdown == "" {
		s.handleError(w, entities.ErrEmptyMarkup, http.StatusBadRequest)
		return
	}

	if body.Format == "" {
		body.Format = string(entities.FormatPDF)
	}

	format, err := entities.ParseOutputFormat(body.Format)
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	deck, err := s.deck.Render(r.Context(), ports.RenderRequest{
		Markup: body.Markdown,
		Theme:  body.Theme,
		Format: format,
	})
	s.monitor.RecordRender(time.Since(start), err)
	if err != nil {
		s.handleError(w, err, statusForError(err))
		return
	}

	w.Header().Set("Content-Type", deck.Format.MIMEType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", deck.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(deck.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(deck.Data); err != nil {
		s.logger.Error("failed to write rendered deck", slog.String("error", err.Error()))
	}
}

func (s *Server) recordGeneration(start time.Time, result *entities.GenerationResult, err error) {
	demo := result != nil && result.DemoMode
	s.monitor.RecordGeneration(time.Since(start), demo, err)
}

// generateResponse builds the response body, attaching preview HTML when
// the previewer succeeds
func (s *Server) generateResponse(result *entities.GenerationResult, fileName string) GenerateResponse {
	slides, err := s.deck.Preview(result.Presentation)
	if err != nil {
		s.logger.Warn("slide preview failed", slog.String("id", result.ID), slog.String("error", err.Error()))
	}

	message := fmt.Sprintf("Successfully generated presentation from %s", fileName)
	if result.DemoMode {
		message = fmt.Sprintf("Demo mode: processed %s, but no generator is configured so demo content was used.", fileName)
	}

	return GenerateResponse{
		Success:      true,
		ID:           result.ID,
		Presentation: result.Presentation,
		Markup:       result.Markup,
		Theme:        result.Theme,
		Slides:       slides,
		DemoMode:     result.DemoMode,
		Generator:    result.Generator,
		GeneratedAt:  result.GeneratedAt,
		Message:      message,
	}
}

// statusForError maps domain errors onto HTTP status codes
func statusForError(err error) int {
	var genErr *entities.GenerationError

	switch {
	case errors.Is(err, entities.ErrEmptyDocument),
		errors.Is(err, entities.ErrEmptyMarkup),
		errors.Is(err, entities.ErrInvalidFormat),
		errors.Is(err, entities.ErrInvalidOptions):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, entities.ErrRendererUnavailable),
		errors.Is(err, entities.ErrGeneratorUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, entities.ErrEmptyResponse), errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns a message that is safe to show to clients. Details
// of internal failures stay in the server log.
func clientMessage(err error, status int) string {
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return "No file uploaded"
	case errors.Is(err, entities.ErrEmptyDocument):
		return "The uploaded document is empty"
	case errors.Is(err, entities.ErrUnsupportedDocument):
		return "Unsupported document type. Upload a PDF, text, markdown or HTML file"
	case errors.Is(err, entities.ErrInvalidOptions):
		return "Invalid content density or target audience"
	case errors.Is(err, entities.ErrEmptyMarkup):
		return "No markdown content provided"
	case errors.Is(err, entities.ErrInvalidFormat):
		return "Invalid format. Supported formats are pdf and html"
	case errors.Is(err, entities.ErrRendererUnavailable):
		return "Presentation renderer is not available"
	case errors.Is(err, entities.ErrEmptyResponse):
		return "The AI service returned no content"
	}

	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusMethodNotAllowed:
		return "Method not allowed"
	case http.StatusRequestEntityTooLarge:
		return "Upload too large"
	case http.StatusTooManyRequests:
		return "Too many requests"
	case http.StatusBadGateway:
		return "Error in AI processing"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return "An error occurred"
	}
}

// handleError handles error responses with sanitized messages
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.LogAttrs(context.Background(), level, "HTTP error",
		slog.Int("status", status),
		slog.String("error", err.Error()))

	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: clientMessage(err, status),
		Time:    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("failed to encode error response", slog.String("error", encodeErr.Error()))
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}
