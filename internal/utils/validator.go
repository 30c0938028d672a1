package utils

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
}

// DefaultPageSize falls back to 5 when PAGE_SIZE is unset or malformed.
func DefaultPageSize() int {
	size, err := strconv.Atoi(GetConfig("PAGE_SIZE"))
	if err != nil || size < 1 {
		return 5
	}
	return size
}
