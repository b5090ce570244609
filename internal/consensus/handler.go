package consensus

import (
	"errors"
	"net/http"

	"github.com/bloomlab/bloom-indicator-backend/internal/classifier"
	"github.com/bloomlab/bloom-indicator-backend/internal/lexicon"
	"github.com/bloomlab/bloom-indicator-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler 把共识引擎的四个操作暴露为Gin处理函数
type Handler struct {
	engine *Engine
}

// NewHandler 创建一个绑定到指定引擎的Handler
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// CheckWord 处理 GET /api/words/check?word=xxx
// 返回判别结果、该层级的示例动词，以及供后续投票使用的签名payload
func (h *Handler) CheckWord(c *gin.Context) {
	resolution, err := h.engine.ResolveWord(c.Query("word"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	// 为本次查词生成签名payload，投票时必须原样带回
	checkID, err := uuid.NewV7()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法生成Check ID"})
		return
	}
	payload := token.CheckPayload{CheckID: checkID.String(), Word: resolution.Word}
	signature, err := token.GenerateCheckSignature(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法生成签名"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    resolution.Kind,
		"word":      resolution.Word,
		"level":     resolution.Level,
		"verbs":     lexicon.VerbsFor(resolution.Level),
		"payload":   payload,
		"signature": signature,
	})
}

// voteRequestBody 定义了前端提交投票时，请求体的JSON结构
type voteRequestBody struct {
	Payload   token.CheckPayload `json:"payload" binding:"required"`
	Signature string             `json:"signature" binding:"required"`
	Level     string             `json:"level" binding:"required"`
	Username  string             `json:"username"`
}

// SubmitVote 处理 POST /api/words/vote
func (h *Handler) SubmitVote(c *gin.Context) {
	var body voteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	// 1. 验证签名，确保投票针对的是服务端确认过的词
	if !token.ValidateCheckSignature(body.Payload, body.Signature) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的投票签名"})
		return
	}

	// 2. 识别用户
	if body.Username == "" {
		h.renderError(c, ErrMissingUser)
		return
	}
	userID, err := h.engine.GetOrCreateUser(body.Username)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// 3. 登记投票
	outcome, err := h.engine.SubmitVote(body.Payload.Word, body.Level, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome":    outcome.Kind,
		"word":       outcome.Word,
		"level":      outcome.Level,
		"vote_count": outcome.VoteCount,
	})
}

// questionRequestBody 定义了完整问题预测的请求体
type questionRequestBody struct {
	Question string `json:"question" binding:"required"`
}

// PredictQuestion 处理 POST /api/questions/predict
func (h *Handler) PredictQuestion(c *gin.Context) {
	var body questionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	level, err := h.engine.ResolveQuestion(body.Question)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"level": level,
		"verbs": lexicon.VerbsFor(level),
	})
}

// userRequestBody 定义了用户注册的请求体
type userRequestBody struct {
	Handle string `json:"handle" binding:"required"`
}

// CreateUser 处理 POST /api/users
// 幂等操作：同一个handle的重复调用返回同一个ID
func (h *Handler) CreateUser(c *gin.Context) {
	var body userRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	userID, err := h.engine.GetOrCreateUser(body.Handle)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     userID,
		"handle": body.Handle,
	})
}

// renderError 把引擎的错误分类映射为HTTP状态码和用户可读的提示
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateVote):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, classifier.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理请求失败: " + err.Error()})
	}
}
