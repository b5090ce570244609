package consensus

import "errors"

// 共识引擎的错误分类。所有错误都只作用于单个请求，
// 由展示层决定如何提示用户，核心不做任何自动重试。
var (
	// ErrEmptyInput 表示提交的文本去除空白后为空
	ErrEmptyInput = errors.New("输入内容不能为空")

	// ErrMissingUser 表示投票时没有提供用户身份
	ErrMissingUser = errors.New("投票前需要先提供用户标识")

	// ErrDuplicateVote 表示该用户已对这条(word, level)记录投过票。
	// 这是信息性的拒绝，不是系统故障：原有投票保持不变，无任何状态修改。
	ErrDuplicateVote = errors.New("该用户已对这条记录投过票")

	// ErrInvalidLevel 表示提交的层级名称不在六个标准标签之内
	ErrInvalidLevel = errors.New("无效的布鲁姆层级")
)
