// Package config defines the application's configuration structures and the
// loader that populates them from environment variables and optional config
// files. The resulting Config is constructed once at startup and passed to
// component constructors; nothing mutates it afterwards.
package config
