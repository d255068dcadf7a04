// Package config provides configuration loading and validation for the
// console REST layer.
//
// Configuration is read from YAML. ${VAR} and ${VAR:-default} references are
// replaced with environment values before parsing; "$$" escapes a literal
// dollar sign.
//
//	cfg, err := config.LoadConfig("configs/console.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := config.ValidateConfig(cfg); err != nil {
//	    return err
//	}
package config
