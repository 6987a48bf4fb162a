package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/clip-qa-backend/internal/domain"
)

// UserQuestionLimit caps a user's question history.
const UserQuestionLimit = 50

// CreateQuestion inserts a question/answer pair for a clip.
func CreateQuestion(ctx context.Context, db *gorm.DB, clipID, userID, question, answer string) (*domain.Question, error) {
	now := time.Now().UTC()
	q := &domain.Question{
		ID:           uuid.NewString(),
		ClipID:       clipID,
		UserID:       userID,
		QuestionText: question,
		AnswerText:   answer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuestion fetches a single question by ID, or ErrNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id string) (*domain.Question, error) {
	var q domain.Question
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestionText writes the given columns (question_text and/or
// answer_text) and bumps updated_at.
func UpdateQuestionText(ctx context.Context, db *gorm.DB, id string, question, answer *string) error {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if question != nil {
		fields["question_text"] = *question
	}
	if answer != nil {
		fields["answer_text"] = *answer
	}
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListQuestionsForClip returns a clip's questions newest first, each with
// its author's username.
func ListQuestionsForClip(ctx context.Context, db *gorm.DB, clipID string) ([]domain.QuestionView, error) {
	var out []domain.QuestionView
	err := db.WithContext(ctx).
		Table("questions").
		Select("questions.id, questions.clip_id, questions.user_id, users.username, " +
			"questions.question_text, questions.answer_text, questions.created_at").
		Joins("JOIN users ON users.id = questions.user_id").
		Where("questions.clip_id = ?", clipID).
		Order("questions.created_at desc, questions.id desc").
		Scan(&out).Error
	return out, err
}

// ListQuestionsForUser returns the user's most recent questions (capped at
// UserQuestionLimit), each with the clip window and video title.
func ListQuestionsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.UserQuestion, error) {
	var out []domain.UserQuestion
	err := db.WithContext(ctx).
		Table("questions").
		Select("questions.id, questions.clip_id, questions.question_text, questions.answer_text, " +
			"questions.created_at, clips.start_time, clips.end_time, videos.title AS video_title").
		Joins("JOIN clips ON clips.id = questions.clip_id").
		Joins("JOIN videos ON videos.id = clips.video_id").
		Where("questions.user_id = ?", userID).
		Order("questions.created_at desc, questions.id desc").
		Limit(UserQuestionLimit).
		Scan(&out).Error
	return out, err
}

// CountQuestionsForClip returns how many questions a clip has.
func CountQuestionsForClip(ctx context.Context, db *gorm.DB, clipID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Question{}).Where("clip_id = ?", clipID).Count(&n).Error
	return n, err
}
