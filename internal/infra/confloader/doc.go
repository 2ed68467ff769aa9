// Package confloader provides configuration loading for dialauth-server.
//
// It uses Koanf to merge configuration sources with priority:
// Flag > Env > File > Default. A companion fsnotify watcher reloads the
// file at runtime for settings that can change without a restart (log
// level).
package confloader
