package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bloomlab/bloom-indicator-backend/internal/taxonomy"
)

// repository 是lexicon模块的中央数据仓库。
// 动词词表在启动时从CSV一次性加载到内存，此后只读，因此不需要加锁。
type repository struct {
	verbsByLevel map[taxonomy.Level][]string
	rowCount     int
}

// globalRepository 是我们仓库的私有单例实例
var globalRepository *repository

// InitializeRepository 从CSV文件加载动词词表，初始化内存仓库。
// 这个函数应该在应用启动时且仅调用一次。
// CSV格式: 两列 (verb, bloom_level)，带表头；两列都会被去除首尾空白，空行被丢弃。
func InitializeRepository(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("无法打开动词词表文件 %s: %w", path, err)
	}
	defer file.Close()

	repo, err := loadFromCSV(file)
	if err != nil {
		return fmt.Errorf("无法解析动词词表文件 %s: %w", path, err)
	}

	globalRepository = repo
	fmt.Printf("动词词表仓库初始化成功，加载了 %d 条动词记录。\n", repo.rowCount)
	return nil
}

// loadFromCSV 把一个两列的CSV流解析为内存词表。
func loadFromCSV(r io.Reader) (*repository, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 行内列数不做硬校验，短行按空值处理
	reader.TrimLeadingSpace = true

	repo := &repository{
		verbsByLevel: make(map[taxonomy.Level][]string, len(taxonomy.AllLevels)),
	}

	headerSkipped := false
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// 跳过表头行 (verb, bloom_level)
		if !headerSkipped {
			headerSkipped = true
			if len(record) >= 1 && strings.EqualFold(strings.TrimSpace(record[0]), "verb") {
				continue
			}
		}

		if len(record) < 2 {
			continue
		}
		verb := strings.TrimSpace(record[0])
		levelName := strings.TrimSpace(record[1])
		if verb == "" || levelName == "" {
			continue
		}

		level, err := taxonomy.Normalize(levelName)
		if err != nil {
			// 词表中出现未知层级属于数据问题，跳过该行并提示
			fmt.Printf("警告: 词表中存在未知层级 %q (动词: %q)，已跳过。\n", levelName, verb)
			continue
		}

		repo.verbsByLevel[level] = append(repo.verbsByLevel[level], verb)
		repo.rowCount++
	}

	return repo, nil
}

// VerbsFor 返回指定层级下的全部示例动词。
// 层级名称不区分大小写；层级未知或没有动词时返回空切片，而不是错误。
func VerbsFor(levelName string) []string {
	if globalRepository == nil {
		return []string{}
	}
	level, err := taxonomy.Normalize(levelName)
	if err != nil {
		return []string{}
	}
	verbs := globalRepository.verbsByLevel[level]
	if len(verbs) == 0 {
		return []string{}
	}
	// 返回副本，防止调用方修改内部切片
	out := make([]string, len(verbs))
	copy(out, verbs)
	return out
}

// RowCount 返回加载成功的词表行数，用于启动时写入metadata指纹。
func RowCount() int {
	if globalRepository == nil {
		return 0
	}
	return globalRepository.rowCount
}
