package models

import "strings"

// NormalizeEmail приводит адрес к канонической форме хранения:
// нижний регистр, без ведущих и хвостовых пробелов.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
