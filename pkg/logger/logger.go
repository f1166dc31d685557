package logger

import "log"

// Logger receives progress events from each stage of a duplicate search
type Logger interface {
	StageStart(stage string, candidates int)
	StageComplete(stage string, groups int)
	StageSkipped(stage string, reason string)
}

type VerboseLogger struct {
	Logger *log.Logger // defaults to the standard logger
}

func (l *VerboseLogger) printf(format string, args ...interface{}) {
	if l.Logger != nil {
		l.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (l *VerboseLogger) StageStart(stage string, candidates int) {
	l.printf("[%s] Starting stage with %d candidates", stage, candidates)
}

func (l *VerboseLogger) StageComplete(stage string, groups int) {
	l.printf("[%s] Stage complete. %d groups remain", stage, groups)
}

func (l *VerboseLogger) StageSkipped(stage string, reason string) {
	l.printf("[%s] Skipped: %s", stage, reason)
}

type NullLogger struct{}

func (l *NullLogger) StageStart(stage string, candidates int) {}

func (l *NullLogger) StageComplete(stage string, groups int) {}

func (l *NullLogger) StageSkipped(stage string, reason string) {}
