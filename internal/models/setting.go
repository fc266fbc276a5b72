package models

// Setting is a persisted key-value pair. The only key in use today is
// the gate's authentication flag.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64;column:key"`
	Value string `gorm:"size:255"`
}

func (Setting) TableName() string { return "settings" }
