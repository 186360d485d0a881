package handler

import (
	"tanuki-quiz/internal/dto"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GetCategories godoc
// @Summary List quiz categories
// @Description Returns every category a quiz can ask about
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *QuizHandler) GetCategories(c *fiber.Ctx) error {
	categories := h.service.GetCategories()
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, dto.CategoryResponse{Key: category.Key, Label: category.Label})
	}
	return c.JSON(resp)
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Creates a new quiz session with one shuffled image per category
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /generate_quiz [get]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GenerateQuiz(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to generate quiz", zap.Error(err))
		return err
	}
	return c.JSON(quiz)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Consumes the quiz session and returns the verdict. Unknown, expired or already answered sessions are reported as incorrect.
// @Tags quiz
// @Accept json
// @Produce json
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /submit_answer [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Invalid submit_answer body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST_BODY",
		})
	}

	verdict := h.service.SubmitAnswer(c.UserContext(), &req)
	logger.Get().Debug("Answer submitted",
		zap.String("session_id", req.SessionID),
		zap.String("selected_category", req.SelectedCategory),
		zap.Bool("correct", verdict.Correct),
	)
	return c.JSON(verdict)
}
