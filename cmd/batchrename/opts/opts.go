package opts

import (
	"io"

	"github.com/pasdam/batchRegexRenamer/pkg/config"
	"github.com/pasdam/batchRegexRenamer/pkg/log"
	"github.com/pasdam/batchRegexRenamer/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// flags
	ConfigFile string
	Script     string
	Debug      bool
	Async      bool
	Yes        bool

	// set up before any command runs
	Config     *config.Config
	UserLogger *status.UserLogger
	Console    *log.Logger

	In  io.Reader
	Out io.Writer
	// Interactive reports whether In is a terminal a prompt can be read from
	Interactive bool
}

// ScriptPath returns the --script flag, or the script named by the config
func (o *RootOpts) ScriptPath() string {
	if o.Script != "" {
		return o.Script
	}
	return o.Config.ScriptPath()
}
