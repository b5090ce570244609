package classifier

import "errors"

// ErrUnavailable 表示底层模型无法完成本次分类请求。
// 这个错误只影响当前请求，进程会继续服务其他请求。
var ErrUnavailable = errors.New("分类模型不可用")

// Classifier 是文本分类模型的适配器接口。
// 它把一段自由文本映射到六个布鲁姆层级标签之一。
// 共识引擎只依赖这个接口，不关心模型的具体实现。
type Classifier interface {
	Classify(text string) (string, error)
}
