package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
	"github.com/fredcamaral/docdeck/internal/domain/ports"
	"github.com/fredcamaral/docdeck/internal/test/builders"
)

// MockDeckService is a mock implementation of ports.DeckService
type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) Generate(ctx context.Context, req ports.GenerateRequest, status ports.StatusFunc) (*entities.GenerationResult, error) {
	args := m.Called(ctx, req, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GenerationResult), args.Error(1)
}

func (m *MockDeckService) Render(ctx context.Context, req ports.RenderRequest) (*ports.RenderedDeck, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RenderedDeck), args.Error(1)
}

func (m *MockDeckService) Preview(p *entities.Presentation) ([]ports.RenderedSlide, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RenderedSlide), args.Error(1)
}

func (m *MockDeckService) Options() ports.OptionsCatalog {
	args := m.Called()
	return args.Get(0).(ports.OptionsCatalog)
}

func (m *MockDeckService) GeneratorName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDeckService) RendererStatus(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// getTestServerConfig returns a test server configuration
func getTestServerConfig() entities.ServerConfig {
	return entities.ServerConfig{
		Host:            "localhost",
		Port:            3000,
		ReadTimeout:     30,
		WriteTimeout:    30,
		ShutdownTimeout: 5,
		MaxUploadMB:     1,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
	}
}

func newTestServer(deck *MockDeckService) *Server {
	return NewServer(deck, getTestServerConfig(), nil)
}

func testResult(demo bool) *entities.GenerationResult {
	p := builders.NewPresentationBuilder().
		WithTitle("Quarterly Review").
		WithSlide("Revenue", "Up 12%", "Churn flat").
		Build()

	return &entities.GenerationResult{
		ID:           "0d9c3c38-5a7e-4a0b-9a55-2f1d3c0e8a11",
		Presentation: p,
		Markup:       "---\nmarp: true\ntheme: default\n---\n\n# Quarterly Review\n",
		Theme:        "default",
		DemoMode:     demo,
		Generator:    "gemini",
		GeneratedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// multipartUpload builds a multipart body with an optional file part
func multipartUpload(t *testing.T, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeError(t *testing.T, body io.Reader) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestHandleHealth(t *testing.T) {
	t.Run("renderer available", func(t *testing.T) {
		deck := new(MockDeckService)
		deck.On("RendererStatus", mock.Anything).Return(nil)
		deck.On("GeneratorName").Return("gemini")

		w := httptest.NewRecorder()
		newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, HealthResponse{Status: "ok", Generator: "gemini", Renderer: "available"}, resp)
		deck.AssertExpectations(t)
	})

	t.Run("renderer missing", func(t *testing.T) {
		deck := new(MockDeckService)
		deck.On("RendererStatus", mock.Anything).Return(entities.ErrRendererUnavailable)
		deck.On("GeneratorName").Return("demo")

		w := httptest.NewRecorder()
		newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		var resp HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "demo", resp.Generator)
		assert.Equal(t, "unavailable", resp.Renderer)
	})
}

func TestHandleOptions(t *testing.T) {
	deck := new(MockDeckService)
	deck.On("Options").Return(ports.OptionsCatalog{
		Styles:    entities.VisualStyles,
		Densities: entities.ContentDensities,
		Audiences: entities.TargetAudiences,
		Defaults:  entities.TransformOptions{}.WithDefaults(),
	})

	w := httptest.NewRecorder()
	newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var catalog ports.OptionsCatalog
	require.NoError(t, json.NewDecoder(w.Body).Decode(&catalog))
	assert.Len(t, catalog.Styles, len(entities.VisualStyles))
	assert.Equal(t, entities.DensityConcise, catalog.Defaults.ContentDensity)
}

func TestHandleGenerate(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		deck := new(MockDeckService)
		result := testResult(false)
		slides := []ports.RenderedSlide{{Index: 0, Title: "Quarterly Review", HTML: "<h1>Quarterly Review</h1>"}}

		deck.On("Generate", mock.Anything, mock.MatchedBy(func(req ports.GenerateRequest) bool {
			return req.FileName == "notes.txt" &&
				string(req.Data) == "Revenue grew." &&
				req.Options.ContentDensity == entities.DensityComprehensive &&
				req.Options.TargetAudience == entities.AudienceLeadership &&
				req.Options.VisualStyle == "gaia" &&
				!req.ForceDemo
		}), mock.Anything).Return(result, nil)
		deck.On("Preview", result.Presentation).Return(slides, nil)

		body, contentType := multipartUpload(t, "notes.txt", []byte("Revenue grew."), map[string]string{
			"contentDensity": "comprehensive",
			"targetAudience": "leadership",
			"visualStyle":    "gaia",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestServer(deck).Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp GenerateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, result.ID, resp.ID)
		assert.Equal(t, "Quarterly Review", resp.Presentation.Title)
		assert.Equal(t, result.Markup, resp.Markup)
		assert.Equal(t, slides, resp.Slides)
		assert.False(t, resp.DemoMode)
		assert.Equal(t, "Successfully generated presentation from notes.txt", resp.Message)
		deck.AssertExpectations(t)
	})

	t.Run("demo flag and demo message", func(t *testing.T) {
		deck := new(MockDeckService)
		result := testResult(true)

		deck.On("Generate", mock.Anything, mock.MatchedBy(func(req ports.GenerateRequest) bool {
			return req.ForceDemo
		}), mock.Anything).Return(result, nil)
		deck.On("Preview", mock.Anything).Return(nil, errors.New("preview failed"))

		body, contentType := multipartUpload(t, "notes.txt", []byte("text"), map[string]string{"demo": "true"})
		req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestServer(deck).Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp GenerateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.DemoMode)
		assert.Empty(t, resp.Slides)
		assert.Contains(t, resp.Message, "Demo mode")
	})

	t.Run("missing file", func(t *testing.T) {
		deck := new(MockDeckService)

		body, contentType := multipartUpload(t, "", nil, map[string]string{"contentDensity": "concise"})
		req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestServer(deck).Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w.Body)
		assert.False(t, resp.Success)
		assert.Equal(t, "No file uploaded", resp.Message)
		deck.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not multipart", func(t *testing.T) {
		deck := new(MockDeckService)

		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"file":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestServer(deck).Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upload too large", func(t *testing.T) {
		deck := new(MockDeckService)

		body, contentType := multipartUpload(t, "big.txt", bytes.Repeat([]byte("a"), 2<<20), nil)
		req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestServer(deck).Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "Upload too large", decodeError(t, w.Body).Message)
	})

	errorCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "unsupported document",
			err:     fmt.Errorf("extracting document: %w", entities.ErrUnsupportedDocument),
			status:  http.StatusUnsupportedMediaType,
			message: "Unsupported document type. Upload a PDF, text, markdown or HTML file",
		},
		{
			name:    "generation failure",
			err:     fmt.Errorf("generating slides: %w", &entities.GenerationError{Provider: "gemini", Cause: errors.New("quota exceeded for key abc")}),
			status:  http.StatusBadGateway,
			message: "Error in AI processing",
		},
		{
			name:    "unexpected failure",
			err:     errors.New("disk full at /tmp/x"),
			status:  http.StatusInternalServerError,
			message: "Internal server error",
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			deck := new(MockDeckService)
			deck.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			body, contentType := multipartUpload(t, "slides.bin", []byte{0x00, 0x01}, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			newTestServer(deck).Handler().ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w.Body)
			assert.Equal(t, tc.message, resp.Message)
			assert.NotContains(t, resp.Message, "abc")
		})
	}
}

func TestHandleRender(t *testing.T) {
	markup := "---\nmarp: true\ntheme: gaia\n---\n\n# Deck\n"

	t.Run("renders pdf attachment", func(t *testing.T) {
		deck := new(MockDeckService)
		deck.On("Render", mock.Anything, ports.RenderRequest{
			Markup: markup,
			Theme:  "gaia",
			Format: entities.FormatPDF,
		}).Return(&ports.RenderedDeck{
			Data:     []byte("%PDF-1.7"),
			Format:   entities.FormatPDF,
			FileName: "presentation.pdf",
		}, nil)

		payload, err := json.Marshal(RenderRequest{Markdown: markup, Theme: "gaia", Format: "pdf"})
		require.NoError(t, err)
		w := httptest.NewRecorder()

		newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(payload)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="presentation.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "8", w.Header().Get("Content-Length"))
		assert.Equal(t, "%PDF-1.7", w.Body.String())
		deck.AssertExpectations(t)
	})

	t.Run("format defaults to pdf", func(t *testing.T) {
		deck := new(MockDeckService)
		deck.On("Render", mock.Anything, mock.MatchedBy(func(req ports.RenderRequest) bool {
			return req.Format == entities.FormatPDF
		})).Return(&ports.RenderedDeck{Data: []byte("x"), Format: entities.FormatPDF, FileName: "presentation.pdf"}, nil)

		w := httptest.NewRecorder()
		newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render",
			strings.NewReader(`{"markdown":"# Deck"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		deck.AssertExpectations(t)
	})

	badRequests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing markdown", `{"format":"pdf"}`, "No markdown content provided"},
		{"invalid format", `{"markdown":"# Deck","format":"pptx"}`, "Invalid format. Supported formats are pdf and html"},
		{"malformed json", `{"markdown":`, "Invalid request"},
	}

	for _, tc := range badRequests {
		t.Run(tc.name, func(t *testing.T) {
			deck := new(MockDeckService)
			w := httptest.NewRecorder()

			newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(tc.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, decodeError(t, w.Body).Message)
			deck.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
		})
	}

	t.Run("renderer unavailable", func(t *testing.T) {
		deck := new(MockDeckService)
		deck.On("Render", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("rendering markup: %w", entities.ErrRendererUnavailable))

		w := httptest.NewRecorder()
		newTestServer(deck).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render",
			strings.NewReader(`{"markdown":"# Deck","format":"html"}`)))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Presentation renderer is not available", decodeError(t, w.Body).Message)
	})
}

func TestRouting(t *testing.T) {
	deck := new(MockDeckService)
	handler := newTestServer(deck).Handler()

	t.Run("unknown path", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Resource not found", decodeError(t, w.Body).Message)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/generate", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{entities.ErrEmptyDocument, http.StatusBadRequest},
		{entities.ErrEmptyMarkup, http.StatusBadRequest},
		{fmt.Errorf("%w: %q", entities.ErrInvalidFormat, "doc"), http.StatusBadRequest},
		{fmt.Errorf("%w: density", entities.ErrInvalidOptions), http.StatusBadRequest},
		{entities.ErrUnsupportedDocument, http.StatusUnsupportedMediaType},
		{entities.ErrRendererUnavailable, http.StatusServiceUnavailable},
		{entities.ErrGeneratorUnavailable, http.StatusServiceUnavailable},
		{entities.ErrEmptyResponse, http.StatusBadGateway},
		{&entities.GenerationError{Provider: "gemini", Cause: context.DeadlineExceeded}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusForError(tt.err))
		})
	}
}

func TestHandleStats(t *testing.T) {
	deck := new(MockDeckService)
	deck.On("Render", mock.Anything, mock.Anything).
		Return(&ports.RenderedDeck{Data: []byte("<html>"), Format: entities.FormatHTML, FileName: "presentation.html"}, nil).Once()
	deck.On("Render", mock.Anything, mock.Anything).
		Return(nil, entities.ErrRendererUnavailable).Once()
	deck.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(testResult(true), nil)
	deck.On("Preview", mock.Anything).Return([]ports.RenderedSlide{}, nil)

	handler := newTestServer(deck).Handler()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render",
			strings.NewReader(`{"markdown":"# Deck","format":"html"}`)))
	}

	body, contentType := multipartUpload(t, "notes.txt", []byte("text"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.EqualValues(t, 1, stats["renders"])
	assert.EqualValues(t, 1, stats["renderFailures"])
	assert.EqualValues(t, 1, stats["generations"])
	assert.EqualValues(t, 1, stats["demoGenerations"])
	assert.EqualValues(t, 0, stats["activeSessions"])
}
