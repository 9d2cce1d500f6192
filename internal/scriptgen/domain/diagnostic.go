package domain

// Diagnostic 是一次可恢复的降级：节点或属性被跳过、引用无法解析等。
type Diagnostic struct {
	Reason   string `json:"reason" bson:"reason"`
	Message  string `json:"message" bson:"message"`
	Node     string `json:"node,omitempty" bson:"node,omitempty"`
	Property string `json:"property,omitempty" bson:"property,omitempty"`
	Class    string `json:"class,omitempty" bson:"class,omitempty"`
}

type Stats struct {
	Serialized int `json:"serialized" bson:"serialized"`
	Skipped    int `json:"skipped" bson:"skipped"`
	// Length 是输出源码的总长度
	Length     int `json:"length" bson:"length"`
}
