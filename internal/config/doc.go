// Package config provides the editor configuration.
//
// A configuration is read from a TOML or YAML file, the format being
// picked by the file extension, then overridden by environment variables:
//
//	TEXTKIT_LOG_LEVEL          logging.level
//	TEXTKIT_DEBUG_DRAW_GLYPHS  debug.draw_glyphs
//	TEXTKIT_THEME              styling.theme
//
// A missing file is not an error; the defaults are used.
//
// # Basic Usage
//
//	cfg, err := config.Load("textkit.toml")
//	if err != nil {
//	    return err
//	}
//	logger.Init(cfg.LoggerConfig(), os.Stderr)
//
// # Live Reload
//
// Watcher reloads the file when it is written or replaced and passes the
// new configuration to its handlers:
//
//	w, err := config.NewWatcher("textkit.toml")
//	w.OnChange(func(cfg *config.Config) {
//	    ed.ApplyConfig(cfg)
//	})
//	w.Start()
//	defer w.Close()
package config
