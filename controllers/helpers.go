package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"nutriplan/middlewares"
	"nutriplan/services"
	"nutriplan/utils"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) string {
	return c.GetString(middlewares.UserIDKey)
}

// respondError writes the status and body for err's kind. Storage failures
// are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	var nf *utils.NotFoundError
	var serr *utils.StorageError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.Is(err, utils.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &serr):
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, field, msg string) {
	verr := &utils.ValidationError{}
	verr.Add(field, "%s", msg)
	respondError(c, verr)
}

// dateQuery reads an optional date parameter; ok is false once a response
// has been written.
func dateQuery(c *gin.Context, name string) (t time.Time, present, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		badRequest(c, name, err.Error())
		return time.Time{}, true, false
	}
	return t, true, true
}
