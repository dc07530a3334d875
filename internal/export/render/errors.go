// Package render serializes row sets into workbook, document and archive
// payloads held fully in memory.
package render

import "errors"

var (
	ErrEmptyExport      = errors.New("empty_export")
	ErrEmptyArchive     = errors.New("empty_archive")
	ErrSerialization    = errors.New("serialization_failed")
	ErrDuplicateEntry   = errors.New("duplicate_archive_entry")
	ErrInvalidEntryName = errors.New("invalid_archive_entry_name")
)
