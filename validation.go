package testlog

import (
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateOptions(opts *Options) error {
	const op errors.Op = "testlog.validateOptions"
	if opts == nil {
		return errors.New(op).Err(ErrInvalidOptions).Msg(errMsgOptionsInvalid)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(opts); err != nil {
		return errors.New(op).Err(ErrInvalidOptions).Msg(errMsgOptionsInvalid + " " + err.Error())
	}

	return nil
}
