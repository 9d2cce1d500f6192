package domain

import "time"

const (
	RunFailed  int8 = 0
	RunSuccess int8 = 1
)

// RunRecord 每次运行一行，成功失败都记。
type RunRecord struct {
	Id          int       `gorm:"column:id;primaryKey;autoIncrement;comment:主键ID" json:"id"`
	RunId       string    `gorm:"column:run_id;type:varchar(36);uniqueIndex;not null;comment:运行ID" json:"run_id"`
	Root        string    `gorm:"column:root;type:varchar(512);comment:根节点路径" json:"root"`
	Strategy    string    `gorm:"column:strategy;type:varchar(16);comment:输出策略" json:"strategy"`
	State       int8      `gorm:"column:state;default:1;comment:运行状态 1成功 0失败" json:"state"`
	ErrCode     string    `gorm:"column:err_code;type:varchar(64);comment:失败错误码" json:"err_code"`
	Serialized  int       `gorm:"column:serialized;comment:序列化节点数" json:"serialized"`
	Skipped     int       `gorm:"column:skipped;comment:跳过节点数" json:"skipped"`
	Length      int       `gorm:"column:length;comment:累计输出长度" json:"length"`
	Diagnostics int       `gorm:"column:diagnostics;comment:诊断条数" json:"diagnostics"`
	CTime       time.Time `gorm:"column:ctime;autoCreateTime;index;comment:运行时间" json:"ctime"`
}

func (RunRecord) TableName() string {
	return "script_run"
}
