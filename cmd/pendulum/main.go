// main.go bootstraps pendulum: it builds the root Cobra command, wires config, and executes with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
	"github.com/Pendulum-BaaS/pendulum-cli/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	logLevel := "info"
	cmd := &cobra.Command{
		Use:           "pendulum",
		Short:         "Deploy and tear down the Pendulum application stack",
		Long:          "pendulum provisions the network, security, database, application, and frontend stacks in dependency order, and tears them down in reverse.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level for pendulum output (debug, info, warn, error)")
	opts.BindFlags(cmd.PersistentFlags())

	deployCmd := newDeployCommand(opts, &logLevel)
	destroyCmd := newDestroyCommand(opts, &logLevel)
	statusCmd := newStatusCommand(opts, &logLevel)
	runsCmd := newRunsCommand(opts)
	devCmd := newDevCommand(opts, &logLevel)
	cmd.AddCommand(
		deployCmd,
		destroyCmd,
		statusCmd,
		runsCmd,
		devCmd,
		newVersionCommand(),
	)
	cmd.Example = `  # Provision every stack in dependency order
  pendulum deploy --plan pendulum.yaml

  # Tear everything down (prompts twice; the second prompt requires typing DESTROY)
  pendulum destroy

  # Inspect the outputs the backend currently reports
  pendulum status database`
	bindViper(cmd, deployCmd, destroyCmd, statusCmd, runsCmd, devCmd)
	return cmd
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("PENDULUM")
	v.AutomaticEnv()
	configFile := os.Getenv("PENDULUM_CONFIG")
	configureConfigFile(v, configFile)

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "pendulum"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "pendulum"))
		add(filepath.Join(home, ".pendulum"))
	}
	return dirs
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var credErr *backend.CredentialError
	var unavailErr *backend.UnavailableError
	switch {
	case errors.As(err, &credErr):
		hint := credErr.Hint
		if hint == "" {
			hint = "verify your provisioning credentials and retry."
		}
		message = fmt.Sprintf("%s\nHint: %s", err, hint)
	case errors.As(err, &unavailErr):
		message = fmt.Sprintf("%s\nHint: check network connectivity to the provisioning backend.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
