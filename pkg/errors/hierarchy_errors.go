package errors

import (
	"fmt"
	"net/http"
)

// Hierarchy-specific error constructors. These are the recoverable failures the
// hierarchy store and the table parsers report; callers branch on them with the
// Is* predicates rather than by matching message text.

// NewDuplicateIDError creates an error for an insert with an id that is
// already present in the store. The store is left untouched.
func NewDuplicateIDError(id string) *AppError {
	return &AppError{
		Type:       ErrorTypeDuplicateID,
		Message:    fmt.Sprintf("node id %q already exists", id),
		Details:    map[string]interface{}{"id": id},
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewHasChildrenError creates an error for a delete attempted on a node that
// still has children. Only leaves may be deleted.
func NewHasChildrenError(id string, childCount int) *AppError {
	return &AppError{
		Type:       ErrorTypeHasChildren,
		Message:    fmt.Sprintf("node %q has %d children and cannot be deleted", id, childCount),
		Details:    map[string]interface{}{"id": id, "children": childCount},
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewNodeNotFoundError creates a not found error for a node id
func NewNodeNotFoundError(id string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("node %q not found", id),
		Details:    map[string]interface{}{"id": id},
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
	}
}

// NewMalformedImportError creates an error for an imported table that is
// missing columns the relational parser requires. The import layer uses it to
// trigger the outline-parser fallback instead of failing the whole import.
func NewMalformedImportError(missing []string) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedImport,
		Message:    fmt.Sprintf("table is missing required columns: %v", missing),
		Details:    map[string]interface{}{"missing_columns": missing},
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// IsDuplicateID checks if an error reports an id collision
func IsDuplicateID(err error) bool {
	return IsType(err, ErrorTypeDuplicateID)
}

// IsHasChildren checks if an error reports a delete on a non-leaf node
func IsHasChildren(err error) bool {
	return IsType(err, ErrorTypeHasChildren)
}

// IsMalformedImport checks if an error reports an unparseable relational table
func IsMalformedImport(err error) bool {
	return IsType(err, ErrorTypeMalformedImport)
}
