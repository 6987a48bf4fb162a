// Question HTTP handlers.
//
//   - POST /questions               (attach a question/answer to a clip)
//   - GET  /questions/user          (the caller's recent questions)
//   - GET  /clips/{id}/questions    (a clip's questions)
//   - PUT  /questions/{id}          (edit one's own question)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/clip-qa-backend/internal/services"
)

// CreateQuestionRequest is the JSON payload for a new question.
type CreateQuestionRequest struct {
	ClipID       string `json:"clip_id" binding:"required" example:"6f1c2d4e-8a8b-4f7e-9a61-1d1c2f3a4b5c"`
	QuestionText string `json:"question_text" binding:"required" example:"What tool is used here?"`
	AnswerText   string `json:"answer_text" binding:"required" example:"A soldering iron"`
}

// UpdateQuestionRequest carries the fields to change. Omitted fields keep
// their current value.
type UpdateQuestionRequest struct {
	QuestionText *string `json:"question_text,omitempty" example:"What tool is used in this shot?"`
	AnswerText   *string `json:"answer_text,omitempty" example:"A hot-air station"`
}

// CreateQuestion godoc
// @ID          createQuestion
// @Summary     Ask a question about a clip
// @Description Stores a question/answer pair (question 5–500 chars, answer 2–1000) and returns the clip to rotation if it was dry.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.CreateQuestionRequest  true  "Question"
// @Success     201   {object}  domain.Question
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404   {object}  handlers.ErrorResponse  "Clip not found"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "clip_id, question_text and answer_text are required")
		return
	}
	q, err := h.questionSvc.Create(c.Request.Context(), userID(c), req.ClipID, req.QuestionText, req.AnswerText)
	if err != nil {
		failErr(c, err)
		return
	}
	created(c, q.ID, q)
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Edit a question
// @Description Updates the provided fields of a question authored by the caller.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      string                          true  "Question ID"
// @Param       body  body      handlers.UpdateQuestionRequest  true  "Fields to change"
// @Success     200   {object}  domain.Question
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     403   {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404   {object}  handlers.ErrorResponse  "Question not found"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	q, err := h.questionSvc.Update(c.Request.Context(), userID(c), c.Param("id"), services.QuestionPatch{
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// ListClipQuestions godoc
// @ID          listClipQuestions
// @Summary     List a clip's questions
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Clip ID"
// @Success     200  {array}   domain.QuestionView
// @Failure     404  {object}  handlers.ErrorResponse  "Clip not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clips/{id}/questions [get]
func (h *Handlers) ListClipQuestions(c *gin.Context) {
	out, err := h.questionSvc.ListForClip(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// ListMyQuestions godoc
// @ID          listMyQuestions
// @Summary     List my questions
// @Description The caller's 50 most recent questions with clip offsets and video title.
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.UserQuestion
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /questions/user [get]
func (h *Handlers) ListMyQuestions(c *gin.Context) {
	out, err := h.questionSvc.ListForUser(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}
