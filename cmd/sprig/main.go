package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	v          *viper.Viper
	log        *logrus.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: newViper(), log: newLogger(false)}
	rootCmd := &cobra.Command{
		Use:   "sprig",
		Short: "sprig is a tool to grow decision trees",
		Long:  `A tool to grow entropy-based decision trees from your data, test them, and use them to classify events`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if config.verbose {
				config.log.SetLevel(logrus.DebugLevel)
			}
			return loadConfigFile(config.v, config.configFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config.cancelFunc != nil {
				config.cancelFunc()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of the command onto STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YML file with default values for the flags")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), treeCmd(config), setCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
}

// Context returns a context cancelled when the process is interrupted.
func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}
