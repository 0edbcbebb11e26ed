package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
)

type CreateDeckInput struct {
	Title   string `json:"title" binding:"required" example:"Organic Chemistry"`
	Subject string `json:"subject" example:"CHEM210"`
}

type CreateCardInput struct {
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

// CreateDeck creates a flashcard deck owned by the caller
func CreateDeck(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateDeckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deck := models.Deck{
		OwnerID: userID,
		Title:   input.Title,
		Subject: input.Subject,
	}

	if err := database.DB.Create(&deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deck"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Deck created successfully",
		"deck":    deck,
	})
}

// GetDecks lists the caller's decks
func GetDecks(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var decks []models.Deck
	if err := database.DB.Where("owner_id = ?", userID).Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

// GetDeck returns a deck with its cards
func GetDeck(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	deckID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck ID"})
		return
	}

	var deck models.Deck
	if err := database.DB.Preload("Cards").First(&deck, deckID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	if deck.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deck": deck})
}

// DeleteDeck deletes a deck and its cards
func DeleteDeck(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	deckID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck ID"})
		return
	}

	var deck models.Deck
	if err := database.DB.First(&deck, deckID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	if deck.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a deck"})
		return
	}

	if err := database.DB.Where("deck_id = ?", deckID).Delete(&models.Flashcard{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cards"})
		return
	}

	if err := database.DB.Delete(&deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deck deleted successfully"})
}

// CreateCard adds a card to a deck owned by the caller
func CreateCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	deckID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deck ID"})
		return
	}

	var deck models.Deck
	if err := database.DB.First(&deck, deckID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	if deck.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can add cards"})
		return
	}

	var input CreateCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := models.Flashcard{
		DeckID: uint(deckID),
		Front:  input.Front,
		Back:   input.Back,
	}

	if err := database.DB.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Card created successfully",
		"card":    card,
	})
}

// DeleteCard removes a card from a deck owned by the caller
func DeleteCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	cardID, err := strconv.ParseUint(c.Param("cardId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return
	}

	var card models.Flashcard
	if err := database.DB.First(&card, cardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var deck models.Deck
	if err := database.DB.First(&deck, card.DeckID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	if deck.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete cards"})
		return
	}

	if err := database.DB.Delete(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
