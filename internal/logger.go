package internal

import (
	"bmlpay/entity"
	"bmlpay/services"
	"fmt"
	"log"
	"time"
)

// Logger writes module-tagged messages to stdout and, when a database is
// provided, mirrors them to the persistent log collection.
type Logger struct {
	module   string
	isDebug  bool
	database services.Database
}

func NewLogger(module string, isDebug bool, database services.Database) *Logger {
	return &Logger{
		module:   module,
		isDebug:  isDebug,
		database: database,
	}
}

func (l *Logger) Debug(message string) {
	if !l.isDebug {
		return
	}
	l.write("DEBUG", message, "")
}

func (l *Logger) Info(message string) {
	l.write("INFO", message, "")
}

func (l *Logger) Warn(message string) {
	l.write("WARN", message, "")
}

func (l *Logger) Error(event string, err error) {
	errorText := ""
	if err != nil {
		errorText = err.Error()
	}
	l.write("ERROR", event, errorText)
}

func (l *Logger) write(level, text, errorText string) {
	if errorText != "" {
		log.Printf("%s: %s: %s; %s", level, l.module, text, errorText)
	} else {
		log.Printf("%s: %s: %s", level, l.module, text)
	}
	if l.database == nil {
		return
	}
	record := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Module:   l.module,
		Text:     text,
		ErrorMsg: errorText,
	}
	if err := l.database.WriteLogMessage(record); err != nil {
		log.Println(fmt.Sprintf("write log message: %v", err))
	}
}
