package models

import "fmt"

// Küçük validation helper'ları — request Validate() metodları
// aynı hata mesajı kalıplarını tekrar tekrar yazmasın diye.

func errRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

func errInvalid(field string) error {
	return fmt.Errorf("invalid %s format", field)
}

func errLength(field string, min, max int) error {
	return fmt.Errorf("%s must be between %d and %d characters", field, min, max)
}
