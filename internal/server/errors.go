package server

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/config"
)

var tagNamesOnce sync.Once

// registerTagNames makes validator report JSON field names.
func registerTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// fromValidator converts the first binding failure into a ValidationError.
func fromValidator(errs validator.ValidationErrors) *apperr.ValidationError {
	fe := errs[0]
	if fe.Tag() == "required" {
		return apperr.MissingField(fe.Field())
	}
	return apperr.New(apperr.KindMissingField, fe.Field(), "%s failed the %s check", fe.Field(), fe.Tag())
}

type errorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

// writeError maps err onto a status code and JSON body.
func (s *Server) writeError(c *gin.Context, err error) {
	var bad errBadBody
	if errors.As(err, &bad) {
		badRequest(c, bad)
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		err = fromValidator(verrs)
	}
	if ve, ok := apperr.As(err); ok {
		status := http.StatusUnprocessableEntity
		if ve.Kind == apperr.KindNotFound {
			status = http.StatusNotFound
		}
		c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Kind: ve.Kind, Field: ve.Field, Message: ve.Message}})
		return
	}

	config.LogError(s.log, "server", c.HandlerName(), c.FullPath(), gin.H{"request_id": c.GetString("request_id")}, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errorBody{Kind: "internal", Message: "internal error"}})
}

// badRequest answers a body that could not be decoded.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errorBody{Kind: "bad_request", Message: err.Error()}})
}

// bindJSON decodes the body into dst. Decoding failures are 400s; failed
// binding tags are validation errors.
func (s *Server) bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fromValidator(verrs)
	}
	return errBadBody{err}
}

type errBadBody struct{ err error }

func (e errBadBody) Error() string { return "malformed request body: " + e.err.Error() }
func (e errBadBody) Unwrap() error { return e.err }
