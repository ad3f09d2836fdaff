package models

import "errors"

var (
	ErrManifestNotFound       = errors.New("version manifest not found")
	ErrParentNotFound         = errors.New("parent version manifest not found")
	ErrMainClassMissing       = errors.New("main class not found")
	ErrEmptyClasspath         = errors.New("classpath is empty")
	ErrInvalidInterpreterPath = errors.New("invalid java path")
	ErrUnknownQuickPlayMode   = errors.New("unknown quick play mode")
	ErrQuickPlayValueMissing  = errors.New("quick play value missing")
)
