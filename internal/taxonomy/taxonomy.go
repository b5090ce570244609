package taxonomy

import (
	"fmt"
	"strings"
)

// Level 定义了布鲁姆认知层级的枚举类型
type Level string

const (
	// LevelRemember 表示“记忆”层级
	LevelRemember Level = "remember"
	// LevelUnderstand 表示“理解”层级
	LevelUnderstand Level = "understand"
	// LevelApply 表示“应用”层级
	LevelApply Level = "apply"
	// LevelAnalyze 表示“分析”层级
	LevelAnalyze Level = "analyze"
	// LevelEvaluate 表示“评价”层级
	LevelEvaluate Level = "evaluate"
	// LevelCreate 表示“创造”层级
	LevelCreate Level = "create"
)

// AllLevels 按认知复杂度从低到高的顺序列出全部六个层级。
// 这个切片在启动后只读，供校验和展示层使用。
var AllLevels = []Level{
	LevelRemember,
	LevelUnderstand,
	LevelApply,
	LevelAnalyze,
	LevelEvaluate,
	LevelCreate,
}

// Normalize 将任意大小写的层级名称规范化为小写的标准标签。
// 层级匹配不区分大小写；无法识别的名称会返回错误。
func Normalize(name string) (Level, error) {
	cleaned := Level(strings.ToLower(strings.TrimSpace(name)))
	for _, l := range AllLevels {
		if cleaned == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("无效的布鲁姆层级: %q", name)
}

// IsValid 检查一个字符串是否是合法的层级名称（不区分大小写）。
func IsValid(name string) bool {
	_, err := Normalize(name)
	return err == nil
}
