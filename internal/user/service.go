package user

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyHandle 表示调用方提交了空白的用户标识。
var ErrEmptyHandle = errors.New("用户标识不能为空")

// GetOrCreate 返回一个handle对应的稳定用户ID，必要时创建新用户。
// 这个操作是幂等的：同一个handle的重复调用总是返回同一个ID，
// 并发的重复插入会被存储层的唯一索引静默吸收，不视为错误。
func GetOrCreate(db *gorm.DB, handle string) (uint, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return 0, ErrEmptyHandle
	}

	// 1. 先查Redis缓存，命中则直接返回
	if id, ok := cachedHandleID(handle); ok {
		return id, nil
	}

	// 2. 尝试插入；handle已存在时OnConflict让插入静默落空
	newUser := User{Handle: handle}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&newUser).Error; err != nil {
		// 个别驱动在冲突时仍会报重复键错误，同样按"已存在"处理
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("无法创建用户 %q: %w", handle, err)
		}
		newUser.ID = 0
	}

	// 3. 插入落空说明用户已存在，按handle查出原有记录
	if newUser.ID == 0 {
		if err := db.Where("handle = ?", handle).First(&newUser).Error; err != nil {
			return 0, fmt.Errorf("无法查询用户 %q: %w", handle, err)
		}
	}

	// 4. 回填缓存，失败不影响结果
	cacheHandleID(handle, newUser.ID)

	return newUser.ID, nil
}
