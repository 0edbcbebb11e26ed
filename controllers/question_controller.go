package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
)

type CreateQuestionInput struct {
	Title   string `json:"title" binding:"required" example:"How do I integrate by parts?"`
	Body    string `json:"body" binding:"required"`
	GroupID *uint  `json:"group_id"`
}

type CreateAnswerInput struct {
	Body string `json:"body" binding:"required"`
}

// CreateQuestion posts a question to the Q&A board
func CreateQuestion(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Group-scoped questions require membership
	if input.GroupID != nil {
		var member models.GroupMember
		if err := database.DB.Where("group_id = ? AND user_id = ?", *input.GroupID, userID).First(&member).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
			return
		}
	}

	question := models.Question{
		GroupID:  input.GroupID,
		AuthorID: userID,
		Title:    input.Title,
		Body:     input.Body,
	}

	if err := database.DB.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Question posted successfully",
		"question": question,
	})
}

// GetQuestions lists questions, optionally filtered by group
func GetQuestions(c *gin.Context) {
	query := database.DB.Preload("Author").Order("created_at DESC")

	if groupIDStr := c.Query("group_id"); groupIDStr != "" {
		groupID, err := strconv.ParseUint(groupIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
			return
		}
		query = query.Where("group_id = ?", groupID)
	} else {
		query = query.Where("group_id IS NULL")
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// GetQuestion returns a question with its answers
func GetQuestion(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	if err := database.DB.Preload("Author").Preload("Answers").Preload("Answers.Author").
		First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// CreateAnswer posts an answer to a question
func CreateAnswer(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	if err := database.DB.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var input CreateAnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer := models.Answer{
		QuestionID: uint(questionID),
		AuthorID:   userID,
		Body:       input.Body,
	}

	if err := database.DB.Create(&answer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Answer posted successfully",
		"answer":  answer,
	})
}

// AcceptAnswer marks an answer as accepted; only the asker can do this
func AcceptAnswer(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}
	answerID, err := strconv.ParseUint(c.Param("answerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	var question models.Question
	if err := database.DB.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if question.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the asker can accept an answer"})
		return
	}

	var answer models.Answer
	if err := database.DB.Where("id = ? AND question_id = ?", answerID, questionID).First(&answer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found for this question"})
		return
	}

	accepted := uint(answerID)
	question.AcceptedAnswerID = &accepted
	if err := database.DB.Save(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer accepted"})
}
