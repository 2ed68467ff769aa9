// Package config defines the server configuration structure.
//
// Configuration is loaded from a YAML file and DIALAUTH_ environment
// variables through internal/infra/confloader. Defaults live in
// default.go, validation in verify.go.
package config
