package entity

import "time"

// LogMessage is a structured log record written to the database log sink.
type LogMessage struct {
	Time     time.Time `json:"time" bson:"time"`
	Level    string    `json:"level" bson:"level"`
	Module   string    `json:"module" bson:"module"`
	Text     string    `json:"text" bson:"text"`
	ErrorMsg string    `json:"error,omitempty" bson:"error,omitempty"`
}

func (l *LogMessage) DataType() string {
	return "log"
}
