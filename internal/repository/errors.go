package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translate 将 gorm 的未找到/唯一冲突错误转换为业务错误
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return err
	}
}
