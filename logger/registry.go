package logger

import (
	"sync"
)

// components holds the named component loggers handed out by Get.
var components = struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// Register installs l as the logger for component name and returns a
// function that puts the previous one back.
func Register(name string, l *Logger) (restore func()) {
	components.mu.Lock()
	prev, had := components.loggers[name]
	components.loggers[name] = l
	components.mu.Unlock()

	return func() {
		components.mu.Lock()
		defer components.mu.Unlock()
		if had {
			components.loggers[name] = prev
		} else {
			delete(components.loggers, name)
		}
	}
}

// Get returns the logger for component name, falling back to the global
// logger tagged with name.
func Get(name string) *Logger {
	components.mu.RLock()
	l, ok := components.loggers[name]
	components.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults drops every registered component logger and derives
// names from the global logger. Call it after Init.
func RegisterDefaults(names ...string) {
	global := GetGlobalLogger()
	components.mu.Lock()
	defer components.mu.Unlock()
	components.loggers = make(map[string]*Logger, len(names))
	for _, name := range names {
		components.loggers[name] = global.WithComponent(name)
	}
}
