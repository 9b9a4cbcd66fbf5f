package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	macho "github.com/appsworld/go-macho64"
	"github.com/appsworld/go-macho64/internal/colors"
	"github.com/appsworld/go-macho64/types"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	// Verbose boolean flag for verbose logging
	Verbose bool
	// Color boolean flag for colorized output
	Color bool
	// AppVersion stores the tool's version
	AppVersion string
	// AppBuildTime stores the tool's build time
	AppBuildTime string
)

var warnColor = colors.BoldYellow().SprintFunc()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "machodump <macho>",
	Short: "Dump the header and load commands of a 64-bit MachO",
	Example: heredoc.Doc(`
		# Dump the header and load command table
		❯ machodump /usr/lib/dyld
		# Only show the LC_UUID and LC_SEGMENT_64 commands
		❯ machodump --filter LC_UUID,LC_SEGMENT_64 /usr/lib/dyld
		# Dump as JSON and fail if the file is inconsistent
		❯ machodump --json --strict /usr/lib/dyld`),
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		if viper.IsSet("color") {
			c := viper.GetBool("color")
			colors.Init(&c)
		}
		return dump(cmd.OutOrStdout(), filepath.Clean(args[0]))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	setVersion()
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func setVersion() {
	if AppVersion == "" {
		return
	}
	rootCmd.Version = AppVersion
	if AppBuildTime != "" {
		rootCmd.Version = fmt.Sprintf("%s, BuildTime: %s", strings.TrimSpace(AppVersion), strings.TrimSpace(AppBuildTime))
	}
}

func init() {
	log.SetHandler(clihander.Default)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/machodump/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&Color, "color", false, "colorize output")
	rootCmd.Flags().BoolP("json", "j", false, "Print the header and load commands as JSON")
	rootCmd.Flags().Bool("strict", false, "Exit with an error if the file has structural warnings")
	rootCmd.Flags().StringSliceP("filter", "f", []string{}, "Only show these load commands (e.g. LC_UUID)")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	viper.BindPFlag("json", rootCmd.Flags().Lookup("json"))
	viper.BindPFlag("strict", rootCmd.Flags().Lookup("strict"))
	viper.BindPFlag("filter", rootCmd.Flags().Lookup("filter"))
	viper.BindEnv("color", "CLICOLOR")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "machodump"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("machodump")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func loadFilter(names []string) ([]types.LoadCmd, error) {
	var filter []types.LoadCmd
	for _, name := range names {
		lc, ok := types.ParseLoadCmd(name)
		if !ok {
			return nil, fmt.Errorf("unknown load command %q", name)
		}
		filter = append(filter, lc)
	}
	return filter, nil
}

func dump(w io.Writer, path string) error {
	filter, err := loadFilter(viper.GetStringSlice("filter"))
	if err != nil {
		return errors.Wrap(err, "invalid --filter")
	}

	if fi, err := os.Stat(path); err == nil {
		log.WithFields(log.Fields{
			"path": path,
			"size": humanize.Bytes(uint64(fi.Size())),
		}).Debug("Parsing MachO")
	}

	m, err := macho.Open(path, macho.FileConfig{LoadFilter: filter})
	if err != nil {
		return errors.Wrapf(err, "failed to parse MachO %s", path)
	}
	log.WithFields(log.Fields{
		"loads": len(m.Loads),
		"bytes": humanize.Bytes(m.LoadSize()),
	}).Debug("Walked load commands")

	if viper.GetBool("json") {
		dat, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal MachO")
		}
		fmt.Fprintln(w, string(dat))
	} else if colors.Enabled() {
		if _, err := io.WriteString(w, colors.Dump(m.String())); err != nil {
			return err
		}
	} else if err := m.Render(w); err != nil {
		return err
	}

	warnings := m.Warnings()
	for _, fd := range warnings {
		log.WithField("offset", fmt.Sprintf("%#x", fd.Offset)).Warn(warnColor(fd.Msg))
	}
	if viper.GetBool("strict") && len(warnings) > 0 {
		return fmt.Errorf("%s has %d structural warning(s)", path, len(warnings))
	}
	return nil
}
