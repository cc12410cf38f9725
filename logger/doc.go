// Package logger provides structured logging for linqkit tools using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying query run fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("recipe")
//	log.Info("recipe finished", logger.Fields(logger.FieldElements, 42))
package logger
