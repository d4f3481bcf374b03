package health

import "context"

// StorePinger checks catalog store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// MediaChecker checks that the media tree is reachable.
type MediaChecker interface {
	CheckMedia() error
}
