package constant

var (
	Version     = "dev"
	CompileTime = "unknown"
)
