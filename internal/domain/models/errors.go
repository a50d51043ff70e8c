package models

import "errors"

var (
	// ErrNoData means the upstream provider returned no bars for a ticker.
	ErrNoData = errors.New("no bar data for ticker")

	// ErrUnknownUniverse means an unsupported universe name was requested.
	ErrUnknownUniverse = errors.New("unknown universe")
)
