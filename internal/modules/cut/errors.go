package cut

import "errors"

var (
	ErrImageRequired       = errors.New("image_required")
	ErrNotAnImage          = errors.New("not_an_image")
	ErrInvalidDisplayOrder = errors.New("invalid_display_order")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrNotFound            = errors.New("not_found")
)
