// Package domain defines the persistence models for users, videos, clips,
// clip views, and questions. These types are mapped with GORM and form the
// core data layer of the clip Q&A application.
package domain

import "time"

// Roles a User may hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an authenticated account. Admins may upload and delete videos
// and read analytics.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: unique login name, 3..50 characters.
//   - PasswordHash: bcrypt hash; never serialized.
//   - Role: "user" or "admin" (enforced by DB constraint).
//   - LastLogin: set on every successful login.
type User struct {
	ID           string     `json:"id"         gorm:"type:char(36);primaryKey"`
	Username     string     `json:"username"   gorm:"type:varchar(50);not null;uniqueIndex:ux_users_username"`
	PasswordHash string     `json:"-"          gorm:"type:varchar(255);not null"`
	Role         string     `json:"role"       gorm:"type:varchar(16);not null;default:'user';check:chk_users_role,role IN ('user','admin')"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Video is an uploaded source video. TotalClipsGenerated is written once,
// in the same transaction that creates its clips.
type Video struct {
	ID                  string    `json:"id"                    gorm:"type:char(36);primaryKey"`
	Title               string    `json:"title"                 gorm:"type:varchar(255);not null"`
	URL                 string    `json:"url"                   gorm:"column:url;type:text;not null"`
	DurationSeconds     int       `json:"duration_seconds"      gorm:"not null;check:chk_videos_duration,duration_seconds > 0"`
	TotalClipsGenerated int       `json:"total_clips_generated" gorm:"not null;default:0"`
	UploadedAt          time.Time `json:"uploaded_at"           gorm:"autoCreateTime;index:idx_videos_uploaded"`
}

// TableName returns the database table name for Video.
func (Video) TableName() string { return "videos" }

// Clip is a 10-second window inside a video, addressed by its start and
// end offsets in whole seconds.
//
// Fields:
//   - IsDry: a user flagged the clip as uninteresting; excluded from selection
//     until a question is attached to it.
//   - ServedCount: how many times the selector has returned the clip; only
//     ever incremented.
//   - Video: FK association, ensures cascade delete.
type Clip struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	VideoID     string    `json:"video_id"     gorm:"type:char(36);not null;index:idx_clips_video_start,priority:1"`
	StartTime   int       `json:"start_time"   gorm:"not null;index:idx_clips_video_start,priority:2;check:chk_clips_length,end_time - start_time = 10"`
	EndTime     int       `json:"end_time"     gorm:"not null"`
	IsDry       bool      `json:"is_dry"       gorm:"not null;default:false;index:idx_clips_pool,priority:2"`
	ServedCount int       `json:"served_count" gorm:"not null;default:0;index:idx_clips_pool,priority:1"`
	CreatedAt   time.Time `json:"created_at"`

	Video Video `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Clip.
func (Clip) TableName() string { return "clips" }

// ClipView is an append-only record of a clip being served to, or marked
// dry by, a user. IDs are ULIDs so rows sort by creation time.
// SessionDuration is nil for a plain serve and 0 for a dry mark.
type ClipView struct {
	ID              string    `json:"id"                         gorm:"type:char(26);primaryKey"`
	ClipID          string    `json:"clip_id"                    gorm:"type:char(36);not null;index:idx_views_clip"`
	UserID          string    `json:"user_id"                    gorm:"type:char(36);not null;index:idx_views_user"`
	ViewedAt        time.Time `json:"viewed_at"                  gorm:"not null;index:idx_views_at"`
	SessionDuration *int      `json:"session_duration,omitempty"`

	Clip Clip `json:"-" gorm:"foreignKey:ClipID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ClipView.
func (ClipView) TableName() string { return "clip_views" }

// Question is a question/answer pair a user attached to a clip.
type Question struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	ClipID       string    `json:"clip_id"       gorm:"type:char(36);not null;index:idx_questions_clip,priority:1"`
	UserID       string    `json:"user_id"       gorm:"type:char(36);not null;index:idx_questions_user,priority:1"`
	QuestionText string    `json:"question_text" gorm:"type:text;not null"`
	AnswerText   string    `json:"answer_text"   gorm:"type:text;not null"`
	QualityScore int       `json:"quality_score" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index:idx_questions_clip,priority:2;index:idx_questions_user,priority:2"`
	UpdatedAt    time.Time `json:"updated_at"`

	Clip Clip `json:"-" gorm:"foreignKey:ClipID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// ServedClip is a clip joined with the title and URL of its video, the
// shape returned by the selector and the clip detail endpoint.
type ServedClip struct {
	ID          string `json:"id"`
	VideoID     string `json:"video_id"`
	StartTime   int    `json:"start_time"`
	EndTime     int    `json:"end_time"`
	IsDry       bool   `json:"is_dry"`
	ServedCount int    `json:"served_count"`
	VideoTitle  string `json:"video_title"`
	URL         string `json:"url"`
}

// PopularClip is a served clip ranked by how many questions it attracted.
type PopularClip struct {
	ServedClip
	QuestionCount int64 `json:"question_count"`
	UniqueViewers int64 `json:"unique_viewers"`
}

// QuestionView is a question joined with its author's username.
type QuestionView struct {
	ID           string    `json:"id"`
	ClipID       string    `json:"clip_id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	QuestionText string    `json:"question_text"`
	AnswerText   string    `json:"answer_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserQuestion is a question joined with the clip window and video title it
// belongs to, the shape of a user's own history.
type UserQuestion struct {
	ID           string    `json:"id"`
	ClipID       string    `json:"clip_id"`
	QuestionText string    `json:"question_text"`
	AnswerText   string    `json:"answer_text"`
	CreatedAt    time.Time `json:"created_at"`
	StartTime    int       `json:"start_time"`
	EndTime      int       `json:"end_time"`
	VideoTitle   string    `json:"video_title"`
}
