// --- START OF FINAL REVISED FILE internal/cli/config/config.go ---
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices" // Requires Go 1.21+
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

const (
	EnvPrefix         = "DOC2PDF"
	DefaultConfigName = "doc2pdf"
)

// LoadAndValidate loads configuration from all sources (defaults, file, profile,
// env, flags), validates the merged configuration, derives necessary values
// (absolute paths, effective TUI state), and sets up the logger.
// Returns the populated Options struct or an error.
func LoadAndValidate(cfgFile, profileName, appVersion string, verbose bool, flags *pflag.FlagSet) (batch.Options, *slog.Logger, error) {
	var opts batch.Options
	v := viper.New()

	// Temporary basic logger for early loading errors
	tempLogHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	tempLogger := slog.New(tempLogHandler)

	setDefaults(v)

	// --- Load Config File ---
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			tempLogger.Error("Failed to get user home directory", slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("failed to get user home directory: %w", err)
		}

		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName)) // Linux standard
		v.AddConfigPath(filepath.Join(home, "."+DefaultConfigName))        // Alternative home dotfile
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) && cfgFile == "" {
			// Config file not found is OK if not explicitly specified
			tempLogger.Debug("No configuration file found, using defaults/env/flags.")
		} else {
			configFileUsed := cfgFile
			if configFileUsed == "" {
				configFileUsed = fmt.Sprintf("searched locations for %s.yaml", DefaultConfigName)
			}
			tempLogger.Error("Error reading configuration file", slog.String("path", configFileUsed), slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("error reading config file '%s': %w", configFileUsed, err)
		}
	} else {
		opts.ConfigFilePath = v.ConfigFileUsed()
		tempLogger.Debug("Using configuration file", slog.String("path", opts.ConfigFilePath))
	}

	// --- Apply Profile ---
	opts.ProfileName = profileName
	if profileName != "" {
		profileKey := "profiles." + profileName
		if !v.IsSet(profileKey) {
			configPath := v.ConfigFileUsed()
			if configPath == "" {
				configPath = "(no config file found)"
			}
			err := fmt.Errorf("profile '%s' not found in config file '%s'", profileName, configPath)
			tempLogger.Error(err.Error())
			return opts, tempLogger, err
		}
		profileSettings := v.Sub(profileKey)
		if profileSettings == nil {
			err := fmt.Errorf("failed to load profile '%s' settings from config file '%s'", profileName, v.ConfigFileUsed())
			tempLogger.Error(err.Error())
			return opts, tempLogger, err
		}
		if err := v.MergeConfigMap(profileSettings.AllSettings()); err != nil {
			tempLogger.Error("Error merging profile", slog.String("profile", profileName), slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("error merging profile '%s': %w", profileName, err)
		}
		tempLogger.Debug("Applied configuration profile", slog.String("profile", profileName))
	}

	// --- Bind Environment Variables ---
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// --- Bind Flags (Highest Priority) ---
	// Viper keys corresponding to flags; flag names match config keys unless aliased below.
	flagKeys := []string{
		"inputs", "output", "verbose", "no-tui", "flatten",
		"output-format", "engine-cmd", "engine-timeout",
		"validate-passthrough", "no-verify-output", "workspace-dir",
	}
	for _, key := range flagKeys {
		flag := flags.Lookup(key)
		if flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				tempLogger.Error("Error binding flag", slog.String("flag", key), slog.Any("error", err))
				return opts, tempLogger, fmt.Errorf("error binding flag '--%s': %w", key, err)
			}
		} else {
			tempLogger.Debug("Flag lookup failed during binding", slog.String("flag", key))
		}
	}

	// Alias flag spellings to their config keys.
	v.RegisterAlias("outputPath", "output")
	v.RegisterAlias("outputFormat", "output-format")
	v.RegisterAlias("engineCommand", "engine-cmd")
	v.RegisterAlias("engineTimeout", "engine-timeout")
	v.RegisterAlias("validatePassthrough", "validate-passthrough")
	v.RegisterAlias("workspaceDir", "workspace-dir")

	// --- Unmarshal Final Configuration ---
	opts.AppVersion = appVersion

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&opts, decodeHook); err != nil {
		tempLogger.Error("Error unmarshalling configuration", slog.Any("error", err))
		return opts, tempLogger, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// --- Explicitly Apply Flag Values for Core Paths (overriding others) ---
	if flags.Changed("inputs") {
		inputVals, _ := flags.GetStringArray("inputs")
		if len(inputVals) > 0 {
			opts.InputPaths = inputVals
			tempLogger.Debug("Input paths explicitly set from flag", slog.Int("count", len(opts.InputPaths)))
		}
	}
	if flags.Changed("output") {
		outputVal, _ := flags.GetString("output")
		if outputVal != "" {
			opts.OutputPath = outputVal
			tempLogger.Debug("Output path explicitly set from flag", slog.String("path", opts.OutputPath))
		}
	}

	// --- Explicitly Handle Flag Overrides for Booleans ---
	// Viper/Cobra binding can sometimes be tricky with boolean flags.
	if flags.Changed("verbose") {
		opts.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("no-tui") {
		if noTui, _ := flags.GetBool("no-tui"); noTui {
			opts.TuiEnabled = false
		}
	}
	if flags.Changed("flatten") {
		if flatten, _ := flags.GetBool("flatten"); flatten {
			opts.PreserveHierarchy = false
		}
	}
	if flags.Changed("validate-passthrough") {
		opts.ValidatePassthrough, _ = flags.GetBool("validate-passthrough")
	}
	if flags.Changed("no-verify-output") {
		if noVerify, _ := flags.GetBool("no-verify-output"); noVerify {
			opts.VerifyEngineOutput = false
		}
	}

	// --- Setup Final Logger ---
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	// Log to Stderr by default for CLI tools
	logHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logHandler)
	opts.Logger = logHandler // Inject the handler into Options for the library

	// --- Final Validation and Derivations ---
	if err := validateAndDeriveOptions(&opts, logger, flags); err != nil {
		return opts, logger, err
	}

	logger.Debug("Configuration loading and validation complete",
		slog.String("configFile", opts.ConfigFilePath),
		slog.String("profile", opts.ProfileName),
		slog.Bool("verbose", opts.Verbose),
		slog.String("logLevel", logLevel.String()),
	)

	return opts, logger, nil
}

// setDefaults establishes the default values for configuration options in Viper.
func setDefaults(v *viper.Viper) {
	// --- Behavior & Control ---
	v.SetDefault("verbose", batch.DefaultVerbose)
	v.SetDefault("tuiEnabled", batch.DefaultTuiEnabled)
	v.SetDefault("preserveHierarchy", batch.DefaultPreserveHierarchy)
	v.SetDefault("output-format", string(batch.DefaultOutputFormat))

	// --- Core Paths ---
	v.SetDefault("output", batch.DefaultArchiveName)

	// --- Engine ---
	v.SetDefault("engine-cmd", batch.DefaultEngineCommand)
	v.SetDefault("engine-timeout", batch.DefaultEngineTimeoutString)

	// --- Validation ---
	v.SetDefault("validate-passthrough", batch.DefaultValidatePassthrough)
	v.SetDefault("verifyEngineOutput", batch.DefaultVerifyEngineOutput)

	// --- Staging ---
	v.SetDefault("workspace-dir", "")
}

// isValidEnumValue checks if a given string value is present in a slice of allowed enum values.
// Case-sensitive comparison.
func isValidEnumValue[T ~string](value T, allowedValues []T) bool {
	return slices.Contains(allowedValues, value)
}

// validateAndDeriveOptions performs semantic validation on the populated
// Options struct and calculates derived fields. Interface dependencies
// (Engine, EventHooks) are injected by the CLI layer, not here.
// It wraps errors with batch.ErrConfigValidation.
func validateAndDeriveOptions(opts *batch.Options, logger *slog.Logger, flags *pflag.FlagSet) error {
	// === Path Validations ===
	if len(opts.InputPaths) == 0 {
		err := fmt.Errorf("%w: at least one input path is required (-i, --inputs)", batch.ErrConfigValidation)
		logger.Error(err.Error(), slog.String("key", "InputPaths"))
		return err
	}
	for i, in := range opts.InputPaths {
		absInput, err := filepath.Abs(in)
		if err != nil {
			err = fmt.Errorf("%w: cannot resolve absolute input path '%s': %w", batch.ErrConfigValidation, in, err)
			logger.Error(err.Error(), slog.String("key", "InputPaths"), slog.String("value", in))
			return err
		}
		if _, statErr := os.Stat(absInput); statErr != nil {
			if os.IsNotExist(statErr) {
				err = fmt.Errorf("%w: input path '%s' does not exist", batch.ErrConfigValidation, absInput)
			} else {
				err = fmt.Errorf("%w: cannot access input path '%s': %w", batch.ErrConfigValidation, absInput, statErr)
			}
			logger.Error(err.Error(), slog.String("key", "InputPaths"), slog.String("value", in))
			return err
		}
		opts.InputPaths[i] = absInput
	}
	if len(opts.InputPaths) > 1 {
		// Directories and archives are whole-batch inputs; they cannot be mixed
		// with further paths.
		for _, in := range opts.InputPaths {
			info, err := os.Stat(in)
			if err == nil && info.IsDir() {
				err = fmt.Errorf("%w: a directory input ('%s') must be the only input", batch.ErrConfigValidation, in)
				logger.Error(err.Error(), slog.String("key", "InputPaths"))
				return err
			}
		}
	}
	logger.Debug("Validated input paths", slog.Int("count", len(opts.InputPaths)))

	if opts.OutputPath == "" {
		opts.OutputPath = batch.DefaultArchiveName
	}
	absOutput, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		err = fmt.Errorf("%w: cannot resolve absolute output path '%s': %w", batch.ErrConfigValidation, opts.OutputPath, err)
		logger.Error(err.Error(), slog.String("key", "OutputPath"), slog.String("value", opts.OutputPath))
		return err
	}
	opts.OutputPath = absOutput
	// An existing directory as output means "write the default archive name inside it".
	if info, statErr := os.Stat(opts.OutputPath); statErr == nil && info.IsDir() {
		opts.OutputPath = filepath.Join(opts.OutputPath, batch.DefaultArchiveName)
	}
	// Attempt to create the parent directory to check writability early.
	if mkdirErr := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); mkdirErr != nil {
		err := fmt.Errorf("%w: cannot create or access output directory '%s': %w", batch.ErrConfigValidation, filepath.Dir(opts.OutputPath), mkdirErr)
		logger.Error(err.Error(), slog.String("key", "OutputPath"), slog.String("value", opts.OutputPath))
		return err
	}
	logger.Debug("Resolved and verified output path", slog.String("path", opts.OutputPath))

	// === Enum String Validations ===
	allowedOutputFormat := []batch.OutputFormat{batch.OutputFormatText, batch.OutputFormatJSON, batch.OutputFormatYAML}
	if !isValidEnumValue(opts.OutputFormat, allowedOutputFormat) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'outputFormat' (flag --output-format). Allowed: %v", batch.ErrConfigValidation, opts.OutputFormat, allowedOutputFormat)
		logger.Error(err.Error(), slog.String("key", "outputFormat"), slog.String("value", string(opts.OutputFormat)))
		return err
	}

	// === Engine Validations ===
	if len(opts.EngineCommand) == 0 {
		opts.EngineCommand = batch.DefaultEngineCommand
		logger.Debug("Engine command not set, defaulting", slog.String("command", strings.Join(opts.EngineCommand, " ")))
	}
	if opts.EngineCommand[0] == "" {
		err := fmt.Errorf("%w: engine command binary cannot be empty (flag --engine-cmd)", batch.ErrConfigValidation)
		logger.Error(err.Error(), slog.String("key", "engineCommand"))
		return err
	}
	if opts.EngineTimeout < 0 {
		err := fmt.Errorf("%w: invalid negative engine timeout '%s' for key 'engineTimeout'", batch.ErrConfigValidation, opts.EngineTimeout)
		logger.Error(err.Error(), slog.String("key", "engineTimeout"), slog.Duration("value", opts.EngineTimeout))
		return err
	}

	// === Workspace ===
	if opts.WorkspaceDir != "" {
		absWs, wsErr := filepath.Abs(opts.WorkspaceDir)
		if wsErr != nil {
			err := fmt.Errorf("%w: cannot resolve absolute workspace dir '%s': %w", batch.ErrConfigValidation, opts.WorkspaceDir, wsErr)
			logger.Error(err.Error(), slog.String("key", "workspaceDir"), slog.String("value", opts.WorkspaceDir))
			return err
		}
		opts.WorkspaceDir = absWs
	}

	// Handle TUI enable/disable logic considering verbose flag
	if opts.Verbose {
		if opts.TuiEnabled && !flags.Changed("no-tui") {
			logger.Debug("Verbose mode enabled, TUI explicitly disabled")
		}
		opts.TuiEnabled = false // Verbose flag always overrides TUI setting
	}

	logger.Debug("Final derived settings validated",
		slog.String("outputPath", opts.OutputPath),
		slog.String("engineCommand", strings.Join(opts.EngineCommand, " ")),
		slog.Duration("engineTimeout", opts.EngineTimeout),
		slog.Bool("preserveHierarchy", opts.PreserveHierarchy),
		slog.Bool("tuiEnabledEffective", opts.TuiEnabled),
	)

	return nil
}

// --- END OF FINAL REVISED FILE internal/cli/config/config.go ---
