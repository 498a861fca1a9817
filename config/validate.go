package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/metadata"
	"github.com/Aarondulong/EH804Project/qaerrors"
	"github.com/Aarondulong/EH804Project/table"
)

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	custom := map[string]validator.Func{
		"family":    isFamily,
		"datekey":   isDateKey,
		"joinmode":  isJoinMode,
		"format":    isFormat,
		"timestamp": isTimestamp,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

func validate(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return qaerrors.NewValidationError("validate config", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
	return qaerrors.NewValidationError(strings.Join(msgs, "; "), err)
}

func isFamily(fl validator.FieldLevel) bool {
	_, err := ingest.FormatByName(fl.Field().String())
	return err == nil
}

func isDateKey(fl validator.FieldLevel) bool {
	_, err := metadata.ParseDateKey(fl.Field().String())
	return err == nil
}

func isJoinMode(fl validator.FieldLevel) bool {
	_, err := table.ParseJoinMode(fl.Field().String())
	return err == nil
}

func isFormat(fl validator.FieldLevel) bool {
	_, err := table.ParseFormat(fl.Field().String())
	return err == nil
}

func isTimestamp(fl validator.FieldLevel) bool {
	_, err := ingest.ParseTimestamp(fl.Field().String())
	return err == nil
}
