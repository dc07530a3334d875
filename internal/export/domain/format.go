package domain

import (
	"fmt"
	"strings"
)

// Format is the artifact kind produced by an export.
type Format string

const (
	FormatWorkbook Format = "WORKBOOK"
	FormatDocument Format = "DOCUMENT"
	FormatArchive  Format = "ARCHIVE"
)

type formatInfo struct {
	ext         string
	contentType string
	label       string
}

var formats = map[Format]formatInfo{
	FormatWorkbook: {ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", label: "Workbook"},
	FormatDocument: {ext: "pdf", contentType: "application/pdf", label: "Document"},
	FormatArchive:  {ext: "zip", contentType: "application/zip", label: "Archive"},
}

func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

func (f Format) Ext() string { return formats[f].ext }

func (f Format) ContentType() string {
	if info, ok := formats[f]; ok {
		return info.contentType
	}
	return "application/octet-stream"
}

func (f Format) Label() string {
	if info, ok := formats[f]; ok {
		return info.label
	}
	return string(f)
}

// ParseFormat accepts the kind name or its file extension.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "workbook", "xlsx", "excel":
		return FormatWorkbook, nil
	case "document", "pdf":
		return FormatDocument, nil
	case "archive", "zip":
		return FormatArchive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
}
