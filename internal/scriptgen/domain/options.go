package domain

// Options 是一次序列化运行可识别的全部开关。
type Options struct {
	// Verbose 输出带空格、可读的标识符；否则输出体积最小的紧凑形式。
	Verbose bool `mapstructure:"verbose" json:"verbose"`
	// Parent 在脚本末尾恢复根节点原来的父节点。
	Parent bool `mapstructure:"parent" json:"parent"`
	// Module 生成可 require 的 ModuleScript，并以 return Root 结尾。
	Module bool `mapstructure:"module" json:"module"`
	// Context 表示以插件（提升）权限运行，影响按安全级别过滤的属性集合。
	Context bool `mapstructure:"context" json:"context"`
}
