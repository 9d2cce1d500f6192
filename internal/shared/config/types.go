package config

type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Serializer SerializerConfig `yaml:"serializer" mapstructure:"serializer"`
	ClassDB    ClassDBConfig    `yaml:"classdb" mapstructure:"classdb"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// MaxBodyKB 限制场景文档请求体大小。
	MaxBodyKB int `yaml:"max_body_kb" mapstructure:"max_body_kb"`
}

// SerializerConfig 是默认运行选项；CLI 参数与请求体可以覆盖。
type SerializerConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Parent  bool `yaml:"parent" mapstructure:"parent"`
	Module  bool `yaml:"module" mapstructure:"module"`
	Context bool `yaml:"context" mapstructure:"context"`
	// Prewarm 为 true 时服务启动后在后台预热属性缓存。
	Prewarm bool `yaml:"prewarm" mapstructure:"prewarm"`
}

type ClassDBConfig struct {
	// Path 为空时使用内置的 API dump。
	Path string `yaml:"path" mapstructure:"path"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type AuthConfig struct {
	// JWTSecret 为空时不校验会话令牌。
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	ExpireH   int    `yaml:"expire_h" mapstructure:"expire_h"`
}
