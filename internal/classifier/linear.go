package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/bloomlab/bloom-indicator-backend/internal/taxonomy"
)

// LinearModel 是离线训练的TF-IDF线性分类器的运行时形态。
// 模型在Python侧训练后导出为JSON权重文件，这里只做前向推理。
type LinearModel struct {
	// Vocabulary 把词项映射到特征向量的下标
	Vocabulary map[string]int `json:"vocabulary"`
	// IDF 是每个词项的逆文档频率，与Vocabulary的下标对齐
	IDF []float64 `json:"idf"`
	// Classes 是输出标签，顺序与Weights的行对齐
	Classes []string `json:"classes"`
	// Weights 是每个类别的系数向量 (len(Classes) x len(Vocabulary))
	Weights [][]float64 `json:"weights"`
	// Intercepts 是每个类别的截距
	Intercepts []float64 `json:"intercepts"`
}

// LoadModel 从JSON权重文件加载模型，并校验各部分的维度是否一致。
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取模型文件 %s: %w", path, err)
	}

	var model LinearModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("无法解析模型文件 %s: %w", path, err)
	}

	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("模型文件 %s 不完整: %w", path, err)
	}

	fmt.Printf("分类模型加载成功: %d 个词项, %d 个类别。\n", len(model.Vocabulary), len(model.Classes))
	return &model, nil
}

// validate 检查权重矩阵的维度与词表、类别是否匹配
func (m *LinearModel) validate() error {
	if len(m.Classes) == 0 || len(m.Vocabulary) == 0 {
		return fmt.Errorf("类别或词表为空")
	}
	if len(m.Weights) != len(m.Classes) || len(m.Intercepts) != len(m.Classes) {
		return fmt.Errorf("权重矩阵维度与类别数不匹配")
	}
	for i, row := range m.Weights {
		if len(row) != len(m.Vocabulary) {
			return fmt.Errorf("类别 %d 的权重向量长度与词表不匹配", i)
		}
	}
	for _, label := range m.Classes {
		if !taxonomy.IsValid(label) {
			return fmt.Errorf("模型输出了未知的层级标签: %q", label)
		}
	}
	if len(m.IDF) != len(m.Vocabulary) {
		return fmt.Errorf("IDF向量长度与词表不匹配")
	}
	return nil
}

// tokenize 按非字母字符切分并转小写，与训练侧的向量化保持一致
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Classify 对一段文本做前向推理，返回得分最高的层级标签。
func (m *LinearModel) Classify(text string) (string, error) {
	if m == nil {
		return "", ErrUnavailable
	}

	// 1. 统计词频
	termFreq := make(map[int]float64)
	for _, token := range tokenize(text) {
		if idx, ok := m.Vocabulary[token]; ok {
			termFreq[idx]++
		}
	}

	// 2. 计算TF-IDF并做L2归一化 (与sklearn TfidfVectorizer的默认行为一致)
	features := make(map[int]float64, len(termFreq))
	var norm float64
	for idx, tf := range termFreq {
		v := tf * m.IDF[idx]
		features[idx] = v
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range features {
			features[idx] /= norm
		}
	}

	// 3. 对每个类别计算线性得分，取最大者
	// 没有任何词项命中词表时，得分退化为截距，相当于输出训练集先验
	bestIdx := 0
	bestScore := math.Inf(-1)
	for c := range m.Classes {
		score := m.Intercepts[c]
		for idx, v := range features {
			score += m.Weights[c][idx] * v
		}
		if score > bestScore {
			bestScore = score
			bestIdx = c
		}
	}

	return m.Classes[bestIdx], nil
}
