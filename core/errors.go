package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Loader 错误：UPSTREAM_LOAD_FAILURE
//   - Embedder 错误：EMBEDDING_FAILURE
//   - 向量计算错误：DIMENSION_MISMATCH
//   - 推荐入口错误：INVALID_CATEGORY, INTERNAL_ERROR
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_CATEGORY"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "cache", "recommend"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"             // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"         // 操作不支持
	ErrorCodeInvalidCategory   = "INVALID_CATEGORY"      // 请求类目不受支持
	ErrorCodeUpstreamLoad      = "UPSTREAM_LOAD_FAILURE" // 候选加载失败（上游存储不可达等）
	ErrorCodeEmbedding         = "EMBEDDING_FAILURE"     // 查询向量化失败
	ErrorCodeDimensionMismatch = "DIMENSION_MISMATCH"    // 向量维度不一致
	ErrorCodeInternalError     = "INTERNAL_ERROR"        // 内部错误
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleCache     = "cache"     // 缓存模块
	ModuleLoader    = "loader"    // 候选加载模块
	ModuleEmbed     = "embed"     // 向量化模块
	ModuleVector    = "vector"    // 向量计算模块
	ModuleRecommend = "recommend" // 推荐入口模块
)

// 常用错误实例

var (
	// ErrInvalidCategory 表示请求的类目不在支持列表中
	ErrInvalidCategory = NewDomainError(ModuleRecommend, ErrorCodeInvalidCategory, "recommend: unsupported category")

	// ErrInternal 表示推荐链路内部失败。
	// 对调用方只暴露一个不透明的内部错误，不泄露上游错误细节。
	ErrInternal = NewDomainError(ModuleRecommend, ErrorCodeInternalError, "recommend: internal failure")

	// ErrDimensionMismatch 表示两个向量长度不一致，无法计算相似度
	ErrDimensionMismatch = NewDomainError(ModuleVector, ErrorCodeDimensionMismatch, "vector: dimension mismatch")
)

// IsInvalidCategory 检查错误是否为类目不受支持
func IsInvalidCategory(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidCategory
	}
	return false
}

// IsInternal 检查错误是否为内部错误
func IsInternal(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInternalError
	}
	return false
}

// IsDimensionMismatch 检查错误是否为向量维度不一致
func IsDimensionMismatch(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeDimensionMismatch
	}
	return false
}
