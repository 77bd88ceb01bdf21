package services

import "errors"

var (
	ErrUnknown        = errors.New("[service]: unknown error")
	ErrRecordNotFound = errors.New("[service]: record not found")
	ErrDuplicateKey   = errors.New("[service]: duplicate key")
	ErrValidation     = errors.New("[service]: validation error")
	// ErrForbidden адрес не в белом списке либо вызывающий не владелец записи.
	ErrForbidden = errors.New("[service]: forbidden")
	// ErrNotProtected запрос доступа к ссылке без защиты.
	ErrNotProtected = errors.New("[service]: link is not protected")
	// ErrInvalidToken токен не найден либо уже погашен.
	ErrInvalidToken = errors.New("[service]: invalid verification token")
	// ErrTokenExpired срок действия токена истек.
	ErrTokenExpired = errors.New("[service]: verification token expired")
	// ErrGenerationExhausted не удалось подобрать свободный короткий код.
	// При нашем алфавите и длине коллизии почти невероятны, так что серия
	// подряд скорее говорит о проблемах с хранилищем.
	ErrGenerationExhausted = errors.New("[service]: short code generation exhausted")
)
