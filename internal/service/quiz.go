package service

import (
	"context"
	"fmt"
	"math/rand"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/dto"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/metrics"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context) (*dto.QuizResponse, error)
	SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) *dto.SubmitAnswerResponse
	GetCategories() []domain.Category
}

type quizService struct {
	repo       domain.AssetRepository
	store      domain.QuizSessionStore
	sources    []domain.ImageSource
	categories []domain.Category
}

// NewQuizService creates a new instance of quizService. Sources are tried in
// order for every choice; the last one should always succeed.
func NewQuizService(
	repo domain.AssetRepository,
	store domain.QuizSessionStore,
	sources []domain.ImageSource,
	categories []domain.Category,
) QuizService {
	return &quizService{
		repo:       repo,
		store:      store,
		sources:    sources,
		categories: categories,
	}
}

// QuestionText renders the prompt for the correct category's label.
func QuestionText(label string) string {
	return fmt.Sprintf("「%s」はどれでしょう？", label)
}

// GenerateQuiz builds one choice per category, shuffles them, picks the
// answer at random and registers the session. The answer is not part of the
// returned view.
func (s *quizService) GenerateQuiz(ctx context.Context) (*dto.QuizResponse, error) {
	if len(s.categories) == 0 {
		return nil, domain.NewInternalError("no quiz categories configured", nil)
	}

	records, err := s.repo.Load(ctx)
	if err != nil {
		// Placeholders still make a playable quiz.
		logger.Get().Warn("Asset catalog unavailable, falling back to placeholders", zap.Error(err))
		records = nil
	}

	choices := make([]domain.QuizChoice, 0, len(s.categories))
	for _, category := range s.categories {
		asset := pickAsset(records, category)
		imageURL, source := resolveImage(ctx, s.sources, category, asset)
		if imageURL == "" {
			return nil, domain.NewInternalError(fmt.Sprintf("no image source for category %q", category.Key), nil)
		}
		logger.Get().Debug("Resolved quiz image",
			zap.String("category", category.Key),
			zap.String("source", source),
		)
		choices = append(choices, domain.QuizChoice{ImageURL: imageURL, Category: category.Key})
	}

	rand.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	for i := range choices {
		choices[i].ID = i + 1
	}

	correct := choices[rand.Intn(len(choices))].Category
	category, _ := domain.FindCategory(s.categories, correct)
	session := domain.QuizSession{
		Question:        QuestionText(category.Label),
		Choices:         choices,
		CorrectCategory: correct,
	}
	if err := session.Validate(); err != nil {
		return nil, domain.NewInternalError("generated an inconsistent quiz", err)
	}

	id, err := s.store.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()

	resp := &dto.QuizResponse{
		SessionID: id,
		Question:  session.Question,
		Choices:   make([]dto.QuizChoiceResponse, 0, len(choices)),
	}
	for _, c := range choices {
		resp.Choices = append(resp.Choices, dto.QuizChoiceResponse{ID: c.ID, ImageURL: c.ImageURL, Category: c.Category})
	}
	return resp, nil
}

// pickAsset returns a uniformly random asset whose filename starts with the
// category key, or nil when there is none.
func pickAsset(records []domain.AssetRecord, category domain.Category) *domain.AssetRecord {
	var candidates []int
	for i := range records {
		if records[i].MatchesCategory(category.Key) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	rec := records[candidates[rand.Intn(len(candidates))]]
	return &rec
}

// SubmitAnswer consumes the session. It always yields a verdict; unknown,
// consumed and expired sessions are reported as incorrect.
func (s *quizService) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) *dto.SubmitAnswerResponse {
	verdict := domain.UnknownVerdict()
	if req != nil && req.SessionID != "" {
		verdict = s.store.Consume(ctx, req.SessionID, req.SelectedCategory)
	}
	metrics.ObserveVerdict(verdict.Correct, verdict.CorrectAnswer != domain.UnknownAnswer)

	return &dto.SubmitAnswerResponse{
		Correct:       verdict.Correct,
		CorrectAnswer: verdict.CorrectAnswer,
	}
}

func (s *quizService) GetCategories() []domain.Category {
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}
