package errx

// 这里定义“跨工具统一”的系统类错误码。
//
// 约束：
// - 这些错误码用于系统/技术类错误归一化（IO、配置、内部兜底）
// - 业务域错误码（例如 GRID_PARITY_VIOLATION）必须由各域自行定义，不允许在 kit 里集中
const (
	// CodeInternal 表示内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeIOFailure 表示文件读写失败（输入缺失、落盘异常等）。
	CodeIOFailure Code = "IO_FAILURE"
	// CodeConfigInvalid 表示配置文件缺失或无法解析。
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

// 统一系统类哨兵错误（允许 WithData/WithCause 派生新对象）。
var (
	ErrInternal      = NewSys(CodeInternal, "内部错误")
	ErrIOFailure     = NewSys(CodeIOFailure, "文件读写失败")
	ErrConfigInvalid = NewSys(CodeConfigInvalid, "配置无效")
)
