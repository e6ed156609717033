package nsmc

import "log"

// LogFatal reports an unrecoverable condition and terminates the process.
// Reserved for spec.md §7 fatal kinds (non-finite likelihood at init,
// draw exhaustion with reduction already at its floor).
func LogFatal(msg string, args ...any) {
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Fatalf("<{[nsmc - FATAL!]}> "+msg, args...)
}

// LogWarning reports a recovered condition (clamped covariance, clustering
// fallback, draw exhaustion escalating to reduction).
func LogWarning(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelWarning {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("[nsmc - Warning] "+msg, args...)
}

func LogDebug(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelDebug {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("<nsmc - Debug> "+msg, args...)
}

func LogInfo(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelInfo {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("[nsmc - Info] "+msg, args...)
}
