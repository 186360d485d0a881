package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/dto"
	"tanuki-quiz/internal/handler"
	"tanuki-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateQuizFunc  func(ctx context.Context) (*dto.QuizResponse, error)
	SubmitAnswerFunc  func(ctx context.Context, req *dto.SubmitAnswerRequest) *dto.SubmitAnswerResponse
	GetCategoriesFunc func() []domain.Category
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context) (*dto.QuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}

func (m *MockQuizService) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) *dto.SubmitAnswerResponse {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, req)
	}
	panic("MockQuizService.SubmitAnswerFunc not implemented")
}

func (m *MockQuizService) GetCategories() []domain.Category {
	if m.GetCategoriesFunc != nil {
		return m.GetCategoriesFunc()
	}
	panic("MockQuizService.GetCategoriesFunc not implemented")
}

func setupQuizApp(quizService *MockQuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewQuizHandler(quizService)
	api := app.Group("/api")
	api.Get("/generate_quiz", h.GenerateQuiz)
	api.Post("/submit_answer", h.SubmitAnswer)
	api.Get("/categories", h.GetCategories)
	return app
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		expected := &dto.QuizResponse{
			SessionID: "session-1",
			Question:  "「タヌキ」はどれでしょう？",
			Choices: []dto.QuizChoiceResponse{
				{ID: 1, ImageURL: "/api/synthetic_image/anaguma", Category: "anaguma"},
				{ID: 2, ImageURL: "/assets/thumbs/tanuki.png", Category: "tanuki"},
				{ID: 3, ImageURL: "/api/synthetic_image/hakubishin", Category: "hakubishin"},
			},
		}
		app := setupQuizApp(&MockQuizService{
			GenerateQuizFunc: func(ctx context.Context) (*dto.QuizResponse, error) { return expected, nil },
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/generate_quiz", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.QuizResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, *expected, body)
	})

	t.Run("ServiceError", func(t *testing.T) {
		app := setupQuizApp(&MockQuizService{
			GenerateQuizFunc: func(ctx context.Context) (*dto.QuizResponse, error) {
				return nil, domain.NewInternalError("no quiz categories configured", nil)
			},
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/generate_quiz", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var body middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, string(domain.CodeInternal), body.Code)
		assert.False(t, body.OK)
	})
}

func TestQuizHandler_SubmitAnswer(t *testing.T) {
	t.Run("Verdict", func(t *testing.T) {
		var got *dto.SubmitAnswerRequest
		app := setupQuizApp(&MockQuizService{
			SubmitAnswerFunc: func(ctx context.Context, req *dto.SubmitAnswerRequest) *dto.SubmitAnswerResponse {
				got = req
				return &dto.SubmitAnswerResponse{Correct: true, CorrectAnswer: "tanuki"}
			},
		})

		payload := []byte(`{"session_id":"session-1","selected_category":"tanuki"}`)
		req := httptest.NewRequest("POST", "/api/submit_answer", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		require.NotNil(t, got)
		assert.Equal(t, "session-1", got.SessionID)
		assert.Equal(t, "tanuki", got.SelectedCategory)

		var body dto.SubmitAnswerResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, dto.SubmitAnswerResponse{Correct: true, CorrectAnswer: "tanuki"}, body)
	})

	t.Run("UnknownSessionIsStill200", func(t *testing.T) {
		app := setupQuizApp(&MockQuizService{
			SubmitAnswerFunc: func(ctx context.Context, req *dto.SubmitAnswerRequest) *dto.SubmitAnswerResponse {
				return &dto.SubmitAnswerResponse{Correct: false, CorrectAnswer: domain.UnknownAnswer}
			},
		})

		req := httptest.NewRequest("POST", "/api/submit_answer", bytes.NewReader([]byte(`{"session_id":"garbage"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"correct":false,"correct_answer":"unknown"}`, string(raw))
	})

	t.Run("MalformedBody", func(t *testing.T) {
		app := setupQuizApp(&MockQuizService{})

		req := httptest.NewRequest("POST", "/api/submit_answer", bytes.NewReader([]byte(`{not json`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestQuizHandler_GetCategories(t *testing.T) {
	app := setupQuizApp(&MockQuizService{
		GetCategoriesFunc: func() []domain.Category { return domain.DefaultCategories },
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/categories", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []dto.CategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []dto.CategoryResponse{
		{Key: "tanuki", Label: "タヌキ"},
		{Key: "anaguma", Label: "アナグマ"},
		{Key: "hakubishin", Label: "ハクビシン"},
	}, body)
}
