package mapper

import (
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/logging"
)

// Logger receives construction diagnostics, grip.Journaler satisfies it
type Logger interface {
	Warning(msg interface{})
	Debug(msg interface{})
}

// DefaultLogger returns a journaler bound to the process grip sender
func DefaultLogger() Logger {
	return logging.MakeGrip(grip.GetSender())
}
