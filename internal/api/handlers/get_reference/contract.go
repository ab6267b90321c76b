package get_reference

type Logger interface {
	Info(format string, v ...interface{})
}
