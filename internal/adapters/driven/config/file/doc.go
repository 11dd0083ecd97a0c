// Package file keeps the studio's configuration under ~/.listing-studio.
//
// config.toml holds the settings as nested tables ([storage], [editor],
// [ai], ...) read and written by ConfigStore. The prompts directory holds
// the location assistant's prompt templates, which users may edit. A
// Watcher reloads both when they change so a running server picks up a
// new debounce window without a restart.
package file
