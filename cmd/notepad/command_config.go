package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"notepad/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"

	configScopeCore = "core"
	configScopeUI   = "ui"
)

type configOutput struct {
	CoreConfigPath string                  `json:"core_config_path,omitempty" toml:"core_config_path,omitempty"`
	UIConfigPath   string                  `json:"ui_config_path,omitempty" toml:"ui_config_path,omitempty"`
	Daemon         *effectiveDaemonConfig  `json:"daemon,omitempty" toml:"daemon,omitempty"`
	Logging        *effectiveLoggingConfig `json:"logging,omitempty" toml:"logging,omitempty"`
	Storage        *effectiveStorageConfig `json:"storage,omitempty" toml:"storage,omitempty"`
	Notes          *effectiveNotesConfig   `json:"notes,omitempty" toml:"notes,omitempty"`
}

type coreConfigOutput struct {
	Daemon  coreDaemonConfigOut    `json:"daemon" toml:"daemon"`
	Logging effectiveLoggingConfig `json:"logging" toml:"logging"`
	Storage effectiveStorageConfig `json:"storage" toml:"storage"`
}

type coreDaemonConfigOut struct {
	Address string `json:"address" toml:"address"`
}

type uiConfigOutput struct {
	Notes effectiveNotesConfig `json:"notes" toml:"notes"`
}

type effectiveDaemonConfig struct {
	Address string `json:"address" toml:"address"`
	BaseURL string `json:"base_url" toml:"base_url"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveStorageConfig struct {
	Backend string `json:"backend" toml:"backend"`
}

type effectiveNotesConfig struct {
	TimestampMode string `json:"timestamp_mode" toml:"timestamp_mode"`
	ConfirmDelete bool   `json:"confirm_delete" toml:"confirm_delete"`
	Markdown      bool   `json:"markdown" toml:"markdown"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		stdout: stdout,
		stderr: stderr,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	var scopes stringList
	fs.Var(&scopes, "scope", "scope to print: core|ui|all (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	resolvedScopes, err := resolveConfigScopes(scopes)
	if err != nil {
		return err
	}
	payload, err := c.buildOutput(*defaults, resolvedScopes)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, projectedConfigPayload(payload, resolvedScopes))
}

func (c *ConfigCommand) buildOutput(defaults bool, scopes map[string]struct{}) (configOutput, error) {
	out := configOutput{}

	if scopeSelected(scopes, configScopeUI) {
		uiPath, err := config.UIConfigPath()
		if err != nil {
			return configOutput{}, err
		}
		uiCfg := config.DefaultUIConfig()
		if !defaults {
			uiCfg, err = config.LoadUIConfig()
			if err != nil {
				return configOutput{}, err
			}
		}
		out.UIConfigPath = uiPath
		out.Notes = &effectiveNotesConfig{
			TimestampMode: uiCfg.TimestampMode(),
			ConfirmDelete: uiCfg.ConfirmDelete(),
			Markdown:      uiCfg.MarkdownEnabled(),
		}
	}

	if scopeSelected(scopes, configScopeCore) {
		corePath, err := config.CoreConfigPath()
		if err != nil {
			return configOutput{}, err
		}
		coreCfg := config.DefaultCoreConfig()
		if !defaults {
			coreCfg, err = config.LoadCoreConfig()
			if err != nil {
				return configOutput{}, err
			}
		}
		out.CoreConfigPath = corePath
		out.Daemon = &effectiveDaemonConfig{
			Address: coreCfg.DaemonAddress(),
			BaseURL: coreCfg.DaemonBaseURL(),
		}
		out.Logging = &effectiveLoggingConfig{
			Level: coreCfg.LogLevel(),
		}
		out.Storage = &effectiveStorageConfig{
			Backend: coreCfg.StorageBackend(),
		}
	}

	return out, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

// projectedConfigPayload prints a single scope in the same shape as its
// config file, so the output can be saved back as a starting point.
func projectedConfigPayload(payload configOutput, scopes map[string]struct{}) any {
	if len(scopes) != 1 {
		return payload
	}
	if scopeSelected(scopes, configScopeUI) && payload.Notes != nil {
		return uiConfigOutput{Notes: *payload.Notes}
	}
	if scopeSelected(scopes, configScopeCore) {
		out := coreConfigOutput{
			Logging: effectiveLoggingConfig{Level: "info"},
			Storage: effectiveStorageConfig{Backend: config.StorageBackendBbolt},
		}
		if payload.Daemon != nil {
			out.Daemon.Address = payload.Daemon.Address
		}
		if payload.Logging != nil {
			out.Logging = *payload.Logging
		}
		if payload.Storage != nil {
			out.Storage = *payload.Storage
		}
		return out
	}
	return payload
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}

func resolveConfigScopes(values []string) (map[string]struct{}, error) {
	all := map[string]struct{}{
		configScopeCore: {},
		configScopeUI:   {},
	}
	if len(values) == 0 {
		return all, nil
	}
	out := map[string]struct{}{}
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			scope, err := normalizeConfigScope(part)
			if err != nil {
				return nil, err
			}
			if scope == "all" {
				return all, nil
			}
			out[scope] = struct{}{}
		}
	}
	return out, nil
}

func normalizeConfigScope(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "all":
		return "all", nil
	case configScopeCore, "daemon":
		return configScopeCore, nil
	case configScopeUI:
		return configScopeUI, nil
	default:
		return "", errors.New("invalid scope: must be core, ui, or all")
	}
}

func scopeSelected(scopes map[string]struct{}, scope string) bool {
	_, ok := scopes[scope]
	return ok
}
