package config

var (
	Version    string = "dev"
	CommitHash string = "n/a"
)

// IsProduction 判断是否为生产环境
// 生产环境：Version 为 "release" 且 CommitHash 已注入
func IsProduction() bool {
	return Version == "release" && CommitHash != "n/a" && CommitHash != ""
}

// IsDevelopment 判断是否为开发环境
func IsDevelopment() bool {
	return !IsProduction()
}
