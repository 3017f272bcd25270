package absence

import "errors"

var (
	ErrRequestNotFound    = errors.New("absence request not found")
	ErrNotRequestOwner    = errors.New("absence request belongs to another user")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrAlreadyProcessed   = errors.New("absence request already processed")
	ErrNotEditable        = errors.New("only submitted absence requests can be edited")
	ErrNotDeletable       = errors.New("only submitted absence requests can be deleted")
	ErrAttachmentNotFound = errors.New("attachment not found")
)
