// Package middleware provides decorators for ports.ProgramStore.
package middleware
