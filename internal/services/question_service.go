// Package services – QuestionService
//
// QuestionService records question/answer pairs against clips. Text is
// NFC-normalized and trimmed before its length is checked, so composed and
// decomposed spellings of the same string count the same. Attaching a
// question to a dry clip puts it back into rotation.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/metrics"
	"github.com/tbourn/clip-qa-backend/internal/repo"
)

// Length bounds, in characters.
const (
	QuestionMinLen = 5
	QuestionMaxLen = 500
	AnswerMinLen   = 2
	AnswerMaxLen   = 1000
)

// QuestionPatch carries the fields to change; nil means unchanged.
type QuestionPatch struct {
	QuestionText *string
	AnswerText   *string
}

// QuestionService manages questions attached to clips.
type QuestionService struct {
	DB *gorm.DB
}

// NewQuestionService constructs a QuestionService.
func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{DB: db}
}

// cleanText NFC-normalizes s and checks its length in runes as submitted,
// surrounding whitespace included. The stored value is trimmed. Text that is
// blank once trimmed is rejected whatever its raw length.
func cleanText(s string, lo, hi int, lenErr error) (string, error) {
	s = norm.NFC.String(s)
	trimmed := strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < lo || n > hi || trimmed == "" {
		return "", lenErr
	}
	return trimmed, nil
}

func checkQuestion(s string) (string, error) {
	return cleanText(s, QuestionMinLen, QuestionMaxLen, ErrQuestionLength)
}

func checkAnswer(s string) (string, error) {
	return cleanText(s, AnswerMinLen, AnswerMaxLen, ErrAnswerLength)
}

// Create attaches a question/answer pair to a clip and clears the clip's dry
// flag, in one transaction.
func (s *QuestionService) Create(ctx context.Context, userID, clipID, question, answer string) (*domain.Question, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("clip.id", clipID),
		),
	)
	defer span.End()

	question, err := checkQuestion(question)
	if err != nil {
		return nil, err
	}
	answer, err = checkAnswer(answer)
	if err != nil {
		return nil, err
	}

	var (
		q       *domain.Question
		revived bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clip, err := repo.GetClip(ctx, tx, clipID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrClipNotFound
		}
		if err != nil {
			return err
		}
		q, err = repo.CreateQuestion(ctx, tx, clipID, userID, question, answer)
		if err != nil {
			return userRef(err)
		}
		if clip.IsDry {
			if err := repo.SetClipDry(ctx, tx, clipID, false); err != nil {
				return err
			}
			revived = true
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("create question", err)
	}

	metrics.QuestionsCreated.Inc()
	if revived {
		metrics.ClipsRevived.Inc()
		log.Ctx(ctx).Info().Str("clip_id", clipID).Msg("dry clip revived by question")
	}
	return q, nil
}

// Update applies patch to a question owned by userID.
func (s *QuestionService) Update(ctx context.Context, userID, questionID string, patch QuestionPatch) (*domain.Question, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Update",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("question.id", questionID),
		),
	)
	defer span.End()

	var out *domain.Question
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := repo.GetQuestion(ctx, tx, questionID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrQuestionNotFound
		}
		if err != nil {
			return err
		}
		if q.UserID != userID {
			return ErrNotQuestionAuthor
		}
		if patch.QuestionText == nil && patch.AnswerText == nil {
			return ErrNoUpdates
		}

		var qt, at *string
		if patch.QuestionText != nil {
			v, err := checkQuestion(*patch.QuestionText)
			if err != nil {
				return err
			}
			qt = &v
		}
		if patch.AnswerText != nil {
			v, err := checkAnswer(*patch.AnswerText)
			if err != nil {
				return err
			}
			at = &v
		}
		if err := repo.UpdateQuestionText(ctx, tx, questionID, qt, at); err != nil {
			return err
		}
		out, err = repo.GetQuestion(ctx, tx, questionID)
		return err
	})
	if err != nil {
		return nil, storeErr("update question", err)
	}
	return out, nil
}

// ListForClip returns a clip's questions newest first with author usernames.
func (s *QuestionService) ListForClip(ctx context.Context, clipID string) ([]domain.QuestionView, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "ListForClip",
		trace.WithAttributes(attribute.String("clip.id", clipID)),
	)
	defer span.End()

	if _, err := repo.GetClip(ctx, s.DB, clipID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrClipNotFound
		}
		return nil, storeErr("get clip", err)
	}
	out, err := repo.ListQuestionsForClip(ctx, s.DB, clipID)
	if err != nil {
		return nil, storeErr("list clip questions", err)
	}
	if out == nil {
		out = []domain.QuestionView{}
	}
	return out, nil
}

// ListForUser returns the user's 50 most recent questions.
func (s *QuestionService) ListForUser(ctx context.Context, userID string) ([]domain.UserQuestion, error) {
	out, err := repo.ListQuestionsForUser(ctx, s.DB, userID)
	if err != nil {
		return nil, storeErr("list user questions", err)
	}
	if out == nil {
		out = []domain.UserQuestion{}
	}
	return out, nil
}
