package usecase

import (
	"errors"
	"net/http"
)

// usecaseが返すHTTP寄りのエラー。handlerの writeError がJSONへ変換する。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// 注文の永続化に失敗した（カートは消していないので再試行できる）
var ErrOrderSubmissionFailed = &HTTPError{
	Status:  http.StatusServiceUnavailable,
	Message: "order submission failed",
}
