// Package lite is a thin layer over cobra and viper: commands get typed
// request structs, and every flag can also come from a config file or the
// environment.
package lite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Command[C, T any] struct {
	Name  string
	Short string
	Long  string
	Args  cobra.PositionalArgs
	Flags func(flags *pflag.FlagSet, req *T)
	Run   func(ctx context.Context, root *Root[C], req *T, args []string) error
}

func (s *Command[C, T]) Register(root *Root[C]) {
	cmd := &cobra.Command{
		Use:   s.Name,
		Short: s.Short,
		Long:  s.Long,
		Args:  s.Args,
	}
	root.AddCommand(cmd)

	var req T
	if s.Flags != nil {
		s.Flags(cmd.Flags(), &req)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := LogContext(cmd.Context(), "cmd", cmd.Name())
		return s.Run(ctx, root, &req, args)
	}
}

type Init[T any] struct {
	Name       string
	Version    string
	Short      string
	Long       string
	ConfigPath string
	EnvPrefix  string
	Bind       func(flags *pflag.FlagSet, cfg *T)
}

func New[T any](ctx context.Context, init Init[T]) *Root[T] {
	cmd := &Root[T]{
		Command: cobra.Command{
			Use:     init.Name,
			Short:   init.Short,
			Long:    init.Long,
			Version: init.Version,

			// Usage is only shown for flag errors, see SetFlagErrorFunc below.
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}
	// overwritten when the command is executed
	cmd.SetContext(ctx)
	cmd.SetVersionTemplate(fmt.Sprintf("%s v%s\n", init.Name, init.Version))
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})
	if init.EnvPrefix == "" {
		init.EnvPrefix = strings.ToUpper(init.Name)
	}
	flags := cmd.PersistentFlags()
	if strings.Contains(init.ConfigPath, "$HOME") {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Warnf(ctx, "Cannot find home dir: %s", err)
		}
		init.ConfigPath = filepath.Clean(strings.ReplaceAll(init.ConfigPath, "$HOME", home))
	}
	configPath, ok := os.LookupEnv(fmt.Sprintf("%s_CONFIG", init.EnvPrefix))
	if ok {
		init.ConfigPath = configPath
	}
	flags.StringVar(&cmd.configPath, "config", init.ConfigPath, "Folder with the config file")
	flags.BoolVar(&cmd.Debug, "debug", false, "Enable debug log output")
	if init.Bind != nil {
		init.Bind(flags, &cmd.Config)
	}
	cmd.PersistentPreRunE = cmd.preRun(init)
	return cmd
}

type Root[T any] struct {
	cobra.Command
	Logger     *slog.Logger
	Debug      bool
	Config     T
	configPath string
}

func (r *Root[T]) initLogger() {
	level := slog.LevelWarn
	if r.Debug {
		level = slog.LevelDebug
	}
	w := r.ErrOrStderr()
	r.Logger = slog.New(&friendlyHandler{
		Handler: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
		w: w,
	})
	logger.DefaultLogger = &slogAdapter{r.Logger}
}

func (r *Root[T]) preRun(init Init[T]) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r.initLogger()
		v := viper.NewWithOptions(viper.WithLogger(r.Logger))
		v.SetConfigName(init.Name)
		v.SetConfigType("yaml")
		if r.configPath != "" {
			v.AddConfigPath(r.configPath)
		} else {
			v.AddConfigPath(".")
		}
		v.SetEnvPrefix(init.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
		v.AutomaticEnv()

		err := v.ReadInConfig()
		if _, ok := err.(viper.ConfigFileNotFoundError); err != nil && !ok {
			return fmt.Errorf("config: %w", err)
		}
		err = bindViperToFlags(v, r.PersistentFlags(), "")
		if err != nil {
			return fmt.Errorf("root flags: %w", err)
		}
		err = bindViperToFlags(v, cmd.Flags(), fmt.Sprintf("%s.", cmd.Name()))
		if err != nil {
			return fmt.Errorf("%s flags: %w", cmd.Name(), err)
		}
		if r.Debug {
			logger.Debugf(cmd.Context(), "config file: %s", v.ConfigFileUsed())
		}
		return nil
	}
}

// bindViperToFlags copies values from the config file or the environment
// into flags that were not given on the command line. Root flags live at
// the top level of the config, command flags under the command name.
func bindViperToFlags(v *viper.Viper, flags *pflag.FlagSet, prefix string) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "help" || f.Changed {
			return
		}
		if f.Annotations == nil {
			f.Annotations = map[string][]string{}
		}
		// persistent flags show up in every command's flag set
		if p, ok := f.Annotations["lite.prefix"]; ok && p[0] != prefix {
			return
		}
		f.Annotations["lite.prefix"] = []string{prefix}
		propName := strings.ReplaceAll(prefix+f.Name, "-", "_")
		if !v.IsSet(propName) {
			return
		}
		switch x := v.Get(propName).(type) {
		case []any:
			sliceValue, ok := f.Value.(pflag.SliceValue)
			if !ok {
				err = fmt.Errorf("%s: expected slice, but got %s", propName, f.Value.String())
				return
			}
			values := make([]string, 0, len(x))
			for _, y := range x {
				values = append(values, fmt.Sprint(y))
			}
			err = sliceValue.Replace(values)
		default:
			err = f.Value.Set(fmt.Sprint(x))
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", propName, err)
		}
	})
	return err
}

type Registerable[T any] interface {
	Register(root *Root[T])
}

func (r *Root[T]) With(subs ...Registerable[T]) *Root[T] {
	for _, sub := range subs {
		sub.Register(r)
	}
	return r
}

// Run executes the command line and exits the process on failure.
func (r *Root[T]) Run(ctx context.Context) {
	if !r.Debug {
		defer func() {
			p := recover()
			if p != nil {
				fmt.Fprint(os.Stderr, color.RedString("PANIC: %s\n", p))
				os.Exit(2)
			}
		}()
	}
	_, err := r.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("ERROR: %s\n", err.Error()))
		os.Exit(1)
	}
}
