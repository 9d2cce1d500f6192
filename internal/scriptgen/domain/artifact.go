package domain

import "time"

// Artifact 是一次成功运行的存档，ID 即 run_id。
type Artifact struct {
	ID          string       `json:"id" bson:"_id"`
	Root        string       `json:"root" bson:"root"`
	Strategy    Strategy     `json:"strategy" bson:"strategy"`
	Options     Options      `json:"options" bson:"options"`
	Container   *Container   `json:"container" bson:"container"`
	Stats       Stats        `json:"stats" bson:"stats"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}
