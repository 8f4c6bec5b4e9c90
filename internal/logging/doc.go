// Package logging provides leveled logging for exporters and tools.
//
// Messages go through package-level functions ([Debugf], [Infof], ...) that
// are filtered by the mode set with [SetLogMode]. By default the standard
// log package writes them to stderr; [Config.SetLogger] redirects them to a
// rotating file.
package logging
