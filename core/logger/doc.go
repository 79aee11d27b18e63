// Package logger is a standardized event logging framework for shell
// sessions. Events are written as newline delimited JSON so they can be
// summarized later with Report.
package logger
