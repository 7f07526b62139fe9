package cards

import "fmt"

// AssetError means a required image for a card could not be loaded; the card
// is abandoned.
type AssetError struct {
	Card  string
	Asset string
	Err   error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("card %q: asset %s: %v", e.Card, e.Asset, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// DataError means a row holds a value the renderer cannot use.
type DataError struct {
	Card  string
	Field string
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("card %q: %s: %v", e.Card, e.Field, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
