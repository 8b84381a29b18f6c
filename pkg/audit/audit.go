// Package audit provides mutation observers for configuration trees:
// structured logging, in-memory recording, and prometheus counters.
package audit

import (
	"log/slog"

	"github.com/psaab/vyconf/pkg/configtree"
)

// Logger returns a mutation hook that logs every operation through the
// given slog logger.
func Logger(logger *slog.Logger) configtree.MutationFunc {
	return func(op string, path []string, args ...string) {
		logger.Info("config mutation",
			"op", op,
			"path", path,
			"args", args,
		)
	}
}
