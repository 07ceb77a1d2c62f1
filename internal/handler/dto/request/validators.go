package request

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request DTOs.
// It must run before the first request is bound.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("calendardate", calendarDate)
		}
	})
}

// calendarDate accepts a bare YYYY-MM-DD date with no time component.
var calendarDate validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return err == nil
}
