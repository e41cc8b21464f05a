// File: internal/config/config.go
// Brief: Flag plumbing and runtime options shared by pendulum commands.

// Package config defines the strongly typed options the pendulum commands
// share, translating Cobra/Viper flag values into paths and toggles the
// orchestrators consume.
package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

// Options holds the CLI configuration shared across commands.
type Options struct {
	PlanFile   string
	Journal    string
	NoJournal  bool
	Verbose    bool
	LocalState string
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		PlanFile:   "pendulum.yaml",
		LocalState: ".pendulum/local-state.json",
	}
}

// BindFlags attaches the shared flags to a FlagSet.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.PlanFile, "plan", "p", o.PlanFile, "Path to the deployment plan file")
	fs.StringVar(&o.Journal, "journal", o.Journal, "Path to the run journal database (default ~/.pendulum/state.sqlite)")
	fs.BoolVar(&o.NoJournal, "no-journal", o.NoJournal, "Disable the local run journal")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Verbose progress output (includes redeploy parameter diffs)")
}

// JournalPath resolves the journal location, defaulting under the home
// directory so every project shares one history.
func (o *Options) JournalPath() (string, error) {
	if o.Journal != "" {
		return o.Journal, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pendulum", "state.sqlite"), nil
}
