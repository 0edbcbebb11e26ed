package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
	"github.com/hustudent/backend/rsvp"
)

// RSVPController serves attendance intent for study sessions from an
// injected in-memory store. RSVPs have process lifetime: a restart clears
// them while the sessions themselves survive in the database.
type RSVPController struct {
	Store *rsvp.Store
}

func NewRSVPController(store *rsvp.Store) *RSVPController {
	return &RSVPController{Store: store}
}

type SubmitRSVPInput struct {
	// Any status string is accepted; only "yes" counts toward attendance.
	Status string `json:"status" binding:"required" example:"yes"`
}

// Submit godoc
// @Summary RSVP to a study session
// @Description Records or overwrites the caller's attendance intent for a session
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param rsvp body SubmitRSVPInput true "RSVP"
// @Success 200 {object} map[string]interface{} "Recorded RSVP"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/sessions/{id}/rsvp [post]
func (rc *RSVPController) Submit(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.StudySession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", session.GroupID, userID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var input SubmitRSVPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := rc.Store.Create(uint(sessionID), userID, input.Status)

	c.JSON(http.StatusOK, gin.H{
		"message": "RSVP recorded",
		"rsvp":    record,
	})
}

// List godoc
// @Summary List RSVPs for a session
// @Description Returns every RSVP record for a session, all statuses included.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]interface{} "RSVP records"
// @Router /api/sessions/{id}/rsvps [get]
func (rc *RSVPController) List(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	// Unknown sessions simply have no RSVPs
	records := rc.Store.FindBySession(uint(sessionID))

	userID := c.MustGet("userID").(uint)
	var mine interface{}
	if rec, ok := rc.Store.UserRSVP(uint(sessionID), userID); ok {
		mine = rec
	}

	c.JSON(http.StatusOK, gin.H{
		"rsvps": records,
		"mine":  mine,
	})
}

// AttendeeCount godoc
// @Summary Count attendees for a session
// @Description Returns the number of "yes" RSVPs for a session
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]int "Attendee count"
// @Router /api/sessions/{id}/attendees/count [get]
func (rc *RSVPController) AttendeeCount(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendee_count": rc.Store.AttendeeCount(uint(sessionID)),
	})
}
