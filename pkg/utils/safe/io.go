package safe

import (
	"io"
	"log/slog"

	"github.com/Proximyst/typewriters/pkg/utils/logging"
)

// Close closes the resource and logs error if any. Use it for response bodies and files
// whose close error cannot change the result.
func Close(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil && err != io.EOF {
		logging.Default().Warn("Fail to close resource", slog.Any("error", err))
	}
}
