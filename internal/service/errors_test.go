package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateErr(t *testing.T) {
	assert.True(t, isDuplicateErr(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateErr(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)))

	// 未翻译驱动的原始报错
	assert.True(t, isDuplicateErr(errors.New("UNIQUE constraint failed: posts.slug")))
	assert.True(t, isDuplicateErr(errors.New("Duplicate entry 'x' for key 'slug'")))

	// 其他约束失败不是重复，不能映射成 409
	assert.False(t, isDuplicateErr(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, isDuplicateErr(errors.New("CHECK constraint failed: growth_stage")))
	assert.False(t, isDuplicateErr(errors.New("connection refused")))
}
