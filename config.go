// config.go

package nsmc

type configStruct struct {
	logLevel LogLevel
}

var Config *configStruct = &configStruct{logLevel: LogLevelInfo}

type LogLevel int

const (
	// LogLevelDebug is the log level for debug messages.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the log level for info messages.
	LogLevelInfo
	// LogLevelWarning is the log level for warning messages.
	LogLevelWarning
	// LogLevelFatal is the log level for fatal messages.
	LogLevelFatal
)

func (c *configStruct) SetLogLevel(level LogLevel) {
	c.logLevel = level
}

func (c *configStruct) GetLogLevel() LogLevel {
	return c.logLevel
}

// SetDefaultConfig resets the package-wide logging configuration.
func SetDefaultConfig() {
	Config.logLevel = LogLevelInfo
}
