package tools

import (
	"errors"
	"fmt"
)

// NotFoundError 请求的工具未注册
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Tool with name '%s' not found.", e.Name)
}

// IsNotFound 判断错误链中是否包含 NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
