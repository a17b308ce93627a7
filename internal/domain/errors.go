package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidTTL       = errors.New("invalid TTL")
	ErrInvalidType      = errors.New("invalid record type")
	ErrInvalidParameter = errors.New("invalid record parameter")
	ErrRequired         = errors.New("required field missing")

	ErrUnsupportedType = errors.New("unsupported record type")
	ErrZoneNotFound    = errors.New("zone not found")
	ErrRecordNotFound  = errors.New("record not found")

	ErrInvalidToken = errors.New("invalid API token")

	ErrConfigReadFailed   = errors.New("config read failed")
	ErrConfigParseFailed  = errors.New("config parse failed")
	ErrConfigValidateFail = errors.New("config validation failed")
)

func RequiredField(field string) error {
	return fmt.Errorf("%w: %s", ErrRequired, field)
}

func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
