package cli

import _ "embed"

//go:embed default_config.yaml
var defaultConfigurationYAML []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration and its format.
// It is merged before any config.yaml found on the search paths.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), defaultConfigurationYAML...), configurationTypeConstant
}
