package services

type LogHandler interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(event string, err error)
}
