package consensus

// ResolutionKind 定义了查词结果的枚举类型
type ResolutionKind string

const (
	// ResolutionApproved 表示答案来自社区批准的词库，具有权威性
	ResolutionApproved ResolutionKind = "APPROVED"
	// ResolutionAdvisory 表示答案来自模型推理，仅供参考
	ResolutionAdvisory ResolutionKind = "ADVISORY"
)

// WordResolution 是查词操作的判别结果。
// 调用方根据Kind直接渲染，不需要解析任何展示文本。
type WordResolution struct {
	Kind  ResolutionKind
	Word  string
	Level string
}

// VoteOutcomeKind 定义了投票结果的枚举类型
type VoteOutcomeKind string

const (
	// VoteCreated 表示这是该(word, level)组合的第一票，记录刚刚建立
	VoteCreated VoteOutcomeKind = "CREATED"
	// VoteRecorded 表示投票已登记，票数尚未达到批准阈值
	VoteRecorded VoteOutcomeKind = "RECORDED"
	// VoteApproved 表示本次投票恰好使票数达到阈值，记录完成批准跃迁。
	// 这个结果在整个记录生命周期内只出现一次；之后的投票回到RECORDED。
	VoteApproved VoteOutcomeKind = "APPROVED"
)

// VoteOutcome 是投票操作的判别结果
type VoteOutcome struct {
	Kind      VoteOutcomeKind
	Word      string
	Level     string
	VoteCount int
}
