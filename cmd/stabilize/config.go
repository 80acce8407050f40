package main

// Config holds the CLI's cobra-populated flags: which graph definition to
// load, how to log, and whether to hot-reload on file change.
type Config struct {
	GraphPath  string
	LogLevel   string
	Watch      bool
	Producers  int
	Cycles     int
	QueueSize  int
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Producers: 2,
		Cycles:    10,
		QueueSize: 256,
	}
}
