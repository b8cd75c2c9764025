package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wesleyorama2/simplenet/http"
	"github.com/wesleyorama2/simplenet/internal/config"
	"github.com/wesleyorama2/simplenet/internal/logger"
	"github.com/wesleyorama2/simplenet/internal/output"
)

var version = "0.1.0"

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own settings.
func NewRootCmd() *cobra.Command {
	v := config.New(version)

	rootCmd := &cobra.Command{
		Use:     "simplenet",
		Short:   "Send GET and POST requests and decode their JSON responses",
		Version: version,
		Long: `simplenet sends form-style GET and POST requests and prints the decoded
JSON response. Requests can be given on the command line or loaded from a
collection file with variables, extraction and schema checks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Settings file (yaml, json or toml)")
	flags.String("env-file", "", "Env file to load (default .env when present)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.DurationP("timeout", "t", http.DefaultTimeout, "Request timeout")
	flags.String("user-agent", "", "User-Agent header (default simplenet/VERSION)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.StringP("output", "o", "text", "Output format: text, json or yaml")

	bindFlag(v, "log_level", rootCmd, "log-level")
	bindFlag(v, "timeout", rootCmd, "timeout")
	bindFlag(v, "user_agent", rootCmd, "user-agent")
	bindFlag(v, "no_color", rootCmd, "no-color")
	bindFlag(v, "output", rootCmd, "output")

	rootCmd.AddCommand(newGetCmd(v))
	rootCmd.AddCommand(newPostCmd(v))
	rootCmd.AddCommand(newRunCmd(v))

	return rootCmd
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	flag := cmd.PersistentFlags().Lookup(name)
	// Only explicitly set flags override env and file values.
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// session is everything a command needs to send requests and print results.
type session struct {
	settings  *config.Settings
	logger    *zap.Logger
	client    *http.Client
	formatter *output.Formatter
	out       io.Writer
}

func newSession(cmd *cobra.Command, v *viper.Viper) (*session, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	settings, err := config.Load(v, configFile, envFile)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(settings.LogLevel, cmd.ErrOrStderr())
	client := http.NewClient(
		http.WithTimeout(settings.Timeout),
		http.WithUserAgent(settings.UserAgent),
		http.WithLogger(log),
	)

	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok {
		color = output.ShouldColor(f, settings.NoColor)
	}

	return &session{
		settings:  settings,
		logger:    log,
		client:    client,
		formatter: output.NewFormatter(output.Format(settings.Output), color),
		out:       out,
	}, nil
}

func (s *session) close() {
	s.client.Close()
	_ = s.logger.Sync()
}

func (s *session) print(rendered string, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(s.out, rendered)
	return err
}
