package apiclient

import (
	"errors"
	"fmt"
)

// ErrUnauthorized 后端返回 401，会话已失效
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// NetworkError 请求未完成（连接失败、超时等），可由用户重试
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError 后端明确拒绝（success=false 或非 2xx），Message 原样展示给用户
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsServer(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
