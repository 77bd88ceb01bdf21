package cache

import "errors"

var (
	// ErrMiss ключ отсутствует (или истек) в кеше.
	ErrMiss = errors.New("[cache]: key not found")
	// ErrUnavailable бекенд кеша недоступен или ответил ошибкой.
	// Для вызывающей стороны это повод считать обращение промахом, не падением.
	ErrUnavailable = errors.New("[cache]: backend unavailable")
)
