package controllers

import (
	"fmt"
	"net/http"
	"net/url"
)

// requestOrigin возвращает scheme://host запроса с учетом настроенного
// базового адреса.
func requestOrigin(r *http.Request, baseURL *url.URL) string {
	if baseURL != nil {
		return fmt.Sprintf("%s://%s", baseURL.Scheme, baseURL.Host)
	}
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// shortURLFor вспомогательная функция которая создает короткую ссылку.
func shortURLFor(r *http.Request, baseURL *url.URL, shortCode string) string {
	return fmt.Sprintf("%s/s/%s", requestOrigin(r, baseURL), shortCode)
}
