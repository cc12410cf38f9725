// Package errors provides the error taxonomy shared by linqkit packages.
// Every failure carries a machine-readable code so callers can branch with
// errors.Is against the exported sentinels instead of matching messages.
package errors
