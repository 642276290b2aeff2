package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/auth"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/session"
)

const sessionHeader = "X-Session-ID"

// sessionKey is the gin context key the middleware stores the resolved
// session under.
const sessionKey = "session"

type SessionHandler struct {
	verifier auth.TokenVerifier
	sessions *session.Store
}

func NewSessionHandler(verifier auth.TokenVerifier, sessions *session.Store) *SessionHandler {
	return &SessionHandler{verifier: verifier, sessions: sessions}
}

type createSessionRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// CreateSession handles POST /sessions: it exchanges a verified ID
// token for a session.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	userID, err := h.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		log.Printf("Token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "LOGIN_REQUIRED",
			Message: "Could not verify identity",
		})
		return
	}

	sess := h.sessions.Create(userID)
	log.Printf("Created session %s for user %s", sess.SessionID, sess.UserID)
	c.JSON(http.StatusCreated, createSessionResponse{
		SessionID: sess.SessionID,
		UserID:    sess.UserID,
	})
}

// DeleteSession handles DELETE /sessions (sign-out).
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if id := c.GetHeader(sessionHeader); id != "" {
		h.sessions.Delete(id)
	}
	c.Status(http.StatusNoContent)
}

// RequireSession resolves the session header and stores the session in
// the request context. Address and payment routes sit behind it.
func RequireSession(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "LOGIN_REQUIRED",
				Message: "Sign in to continue",
			})
			return
		}
		sess, err := sessions.Get(id)
		if err != nil {
			code := "LOGIN_REQUIRED"
			if errors.Is(err, session.ErrExpired) {
				code = "SESSION_EXPIRED"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   code,
				Message: "Sign in to continue",
			})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) session.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(session.Session)
	return sess
}
