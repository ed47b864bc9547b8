//go:build testing

package log

import (
	"io"

	"github.com/rs/zerolog"
)

func init() {
	logger = zerolog.New(io.Discard).With().Stack().Logger()
}
