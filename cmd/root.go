/*
Copyright (c) Vocabscrub Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vocabscrub/vocabscrub/src/config"
	"github.com/vocabscrub/vocabscrub/src/utils"
)

var (
	cfgFile     string
	randomize   bool
	delimiter   string
	logDir      string
	reportCount bool
)

// configurableFlags are root flags whose defaults may come from the config
// file or environment. A flag set on the command line always wins.
var configurableFlags = []string{"log_level", "delimiter", "log-dir", "randomize", "report-count"}

var rootCmd = &cobra.Command{
	Use:   "vocabscrub <input-file> <vocabulary-file> <output-file>",
	Short: "Replace sensitive vocabulary terms in text files",
	Long: `vocabscrub scans a text file for occurrences of user-supplied sensitive terms
and replaces each one, writing the sanitized result to a new file. Replacements are
either literal values from the vocabulary file or, with --randomize, freshly generated
synthetic values (names, dates, emails, ...) inferred from the term.`,

	Args:         cobra.ExactArgs(3),
	SilenceUsage: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Use == "version" {
			return
		}
		applyConfigDefaults(cmd)
		if err := config.ValidateLogLevel(); err != nil {
			utils.ErrExit("%v", err)
		}
		if err := config.ValidateDelimiter(delimiter); err != nil {
			utils.ErrExit("%v", err)
		}
		InitLogging(logDir)
	},

	Run: func(cmd *cobra.Command, args []string) {
		scrubRun(args[0], args[1], args[2])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.vocabscrub.yaml)")

	rootCmd.PersistentFlags().StringVarP(&config.LogLevel, "log_level", "l", "info",
		"logging verbosity (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.Flags().BoolVar(&randomize, "randomize", false,
		"replace every occurrence with a freshly generated synthetic value; "+
			"requires a vocabulary of bare terms (no replacement column)")

	rootCmd.Flags().StringVar(&delimiter, "delimiter", ",",
		"field delimiter used in the vocabulary file")

	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"write logs to <log-dir>/vocabscrub.log with rotation instead of stderr")

	rootCmd.Flags().BoolVar(&reportCount, "report-count", false,
		"print the total and per-term replacement counts after the run")
}

// applyConfigDefaults fills in flags the user did not set from viper
// (config file or environment).
func applyConfigDefaults(cmd *cobra.Command) {
	for _, name := range configurableFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed || !viper.IsSet(name) {
			continue
		}
		err := flag.Value.Set(viper.GetString(name))
		if err != nil {
			utils.ErrExit("invalid config value for %s: %v", name, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".vocabscrub" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocabscrub")
	}

	viper.SetEnvPrefix("VOCABSCRUB")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
