package httperr

import (
	"log/slog"
	"net/http"

	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, code errs.Code, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = string(code)
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

const codeDuplicate errs.Code = "DUPLICATE_KEY"

// Abort maps err onto the error taxonomy and aborts with the matching status.
// Internal failures never expose their message.
func Abort(c *gin.Context, err error) {
	code := errs.CodeOf(err)
	if code != errs.CodeInternal {
		AbortWithError(c, StatusOf(code), code, err, err.Error(), nil)
		return
	}

	switch {
	case infra.IsKind(err, infra.KindDuplicateKey):
		AbortWithError(c, http.StatusConflict, codeDuplicate, err, "Resource already exists", nil)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		AbortWithError(c, http.StatusUnprocessableEntity, errs.CodeValidation, err, "Referenced resource does not exist", nil)
	default:
		slog.Error("unhandled error", "path", c.FullPath(), "error", err.Error(), "stack", errs.ExtractStackLines(err, 12))
		AbortWithError(c, http.StatusInternalServerError, code, err, "Internal server error", nil)
	}
}

func StatusOf(code errs.Code) int {
	switch code {
	case errs.CodeUnauthorized:
		return http.StatusForbidden
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeValidation:
		return http.StatusBadRequest
	case errs.CodeAlreadySubmitted, errs.CodeCapacityExceeded, errs.CodeAppointmentNotOpen, errs.CodeInvalidStateTransition:
		return http.StatusConflict
	case errs.CodeNoDefaultPriceBook:
		return http.StatusUnprocessableEntity
	case errs.CodeWebhookConfigMissing, errs.CodeWebhookDeliveryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, errs.CodeValidation, err, msg, nil)
}

func Unauthenticated(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusUnauthorized, errs.CodeUnauthorized, err, msg, nil)
}
