// Package file stores gdata settings in a TOML file, config.toml under the
// configuration directory, and reloads it when the file changes on disk.
package file
