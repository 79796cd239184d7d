package locomotion

import "errors"

var (
	ErrInvalidJumpProfile = errors.New("locomotion: invalid jump profile")
	ErrInvalidConfig      = errors.New("locomotion: invalid config")
	ErrInvariant          = errors.New("locomotion: invariant violated")
)
