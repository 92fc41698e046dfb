package testutils

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
)

type RequestOptions struct {
	headers map[string]string
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

// MakeRequest прогоняет запрос через роутер и возвращает записанный ответ.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) *http.Response {
	options := RequestOptions{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(&options)
	}

	req := httptest.NewRequest(args.Method, args.URL, args.Body)
	for key, value := range options.headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, req)
	return recorder.Result()
}

func WithHeader(key, value string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		o.headers[key] = value
	}
}

// WithJSONBody проставляет Content-Type запроса.
func WithJSONBody() func(*RequestOptions) {
	return WithHeader("Content-Type", "application/json")
}

// WithBasicAuth авторизует запрос парой юзернейм/пароль.
func WithBasicAuth(username, password string) func(*RequestOptions) {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return WithHeader("Authorization", "Basic "+encoded)
}

// WithBearer авторизует запрос jwt-токеном.
func WithBearer(token string) func(*RequestOptions) {
	return WithHeader("Authorization", "Bearer "+token)
}
