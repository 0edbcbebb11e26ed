package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
)

type CreateQuizInput struct {
	Title     string             `json:"title" binding:"required" example:"Week 5 checkpoint"`
	Questions []QuizQuestionItem `json:"questions" binding:"required,min=1"`
}

type QuizQuestionItem struct {
	Prompt       string   `json:"prompt" binding:"required"`
	Choices      []string `json:"choices" binding:"required,min=2"`
	CorrectIndex int      `json:"correct_index"`
}

type SubmitAttemptInput struct {
	// Answers holds the chosen index per question, in question order. -1
	// marks a skipped question.
	Answers []int `json:"answers" binding:"required"`
}

// CreateQuiz creates a quiz with its questions inside a group
func CreateQuiz(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var input CreateQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, q := range input.Questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "correct_index out of range for question choices"})
			return
		}
	}

	quiz := models.Quiz{
		GroupID:   uint(groupID),
		Title:     input.Title,
		CreatedBy: userID,
	}
	for _, q := range input.Questions {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Prompt:       q.Prompt,
			Choices:      q.Choices,
			CorrectIndex: q.CorrectIndex,
		})
	}

	if err := database.DB.Create(&quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quiz created successfully",
		"quiz":    quiz,
	})
}

// GetQuizzes lists quizzes of a group
func GetQuizzes(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var quizzes []models.Quiz
	if err := database.DB.Where("group_id = ?", groupID).Find(&quizzes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quizzes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// GetQuiz returns a quiz with its questions. Correct answers are never
// serialized, so this is safe to show quiz takers.
func GetQuiz(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	var quiz models.Quiz
	if err := database.DB.Preload("Questions").First(&quiz, quizID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", quiz.GroupID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}

// SubmitAttempt scores an attempt server-side and stores the result
func SubmitAttempt(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	var quiz models.Quiz
	if err := database.DB.Preload("Questions").First(&quiz, quizID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", quiz.GroupID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var input SubmitAttemptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Answers) != len(quiz.Questions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer count does not match question count"})
		return
	}

	score := scoreAttempt(quiz.Questions, input.Answers)

	attempt := models.QuizAttempt{
		QuizID:  uint(quizID),
		UserID:  userID,
		Answers: input.Answers,
		Score:   score,
		Total:   len(quiz.Questions),
	}

	if err := database.DB.Create(&attempt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attempt"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Attempt submitted",
		"attempt": attempt,
	})
}

// GetAttempts lists the caller's attempts for a quiz
func GetAttempts(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	var attempts []models.QuizAttempt
	if err := database.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attempts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

// scoreAttempt counts answers matching the question's correct index.
// Out-of-range picks score zero for that question.
func scoreAttempt(questions []models.QuizQuestion, answers []int) int {
	score := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] >= 0 && answers[i] < len(q.Choices) && answers[i] == q.CorrectIndex {
			score++
		}
	}
	return score
}
