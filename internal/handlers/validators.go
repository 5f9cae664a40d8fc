package handlers

import (
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("isodate", isISODate)
	})
	return err
}

// isISODate accepts calendar dates in YYYY-MM-DD form. Pointer fields are dereferenced by
// the validator before this runs.
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateLayout, fl.Field().String())
	return err == nil
}
