package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type handler struct {
	ledger *rememberme.Ledger
	logger logging.Logger
}

// issueRequest may shorten the configured lifetime through ExpiresAt but
// never extend it.
type issueRequest struct {
	UserID    string     `json:"user_id" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type credentialResponse struct {
	UserID    string     `json:"user_id"`
	Digest    string     `json:"digest"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func toResponse(c *models.Credential) credentialResponse {
	return credentialResponse{
		UserID:    c.UserID,
		Digest:    c.Hash,
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), common.RequestTimeout)
}

// issue creates a credential for a user the calling login service has
// already authenticated. RequireIssuerKey guards the route.
func (h *handler) issue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.ledger.Issue(ctx, NewCookieTransport(c.Writer, c.Request), rememberme.IssueRequest{
		UserID:    req.UserID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(res.Credential))
}

func (h *handler) verify(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cred, err := h.ledger.Verify(ctx, NewCookieTransport(c.Writer, c.Request), "")
	if err != nil {
		h.fail(c, err)
		return
	}
	if cred == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrorUnauthorized.Error()})
		return
	}
	c.JSON(http.StatusOK, toResponse(cred))
}

// revoke always answers 204 with the cookie cleared. A storage failure is
// logged and attached to the request, the browser still sees a logout.
func (h *handler) revoke(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.ledger.Revoke(ctx, NewCookieTransport(c.Writer, c.Request)); err != nil {
		_ = c.Error(err)
		h.logger.Error(ctx, "revoke failed, cookie cleared", "error", err)
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, common.ErrEmptyUserID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrStorage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindError turns a binding failure into a message naming the offending field.
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return "user_id is required"
	}
	var perr *time.ParseError
	if errors.As(err, &perr) {
		return "expires_at must be an RFC 3339 timestamp"
	}
	return fmt.Sprintf("invalid request body: %v", err)
}
