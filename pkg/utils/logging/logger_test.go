package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestContactFieldsRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)

	logger.Info("slots merged", "slots", session.Slots{
		Name:          "Priya",
		ContactNumber: "9876543210",
		Email:         "priya@example.com",
		ServiceName:   "haircut",
	})

	out := buf.String()
	gt.S(t, out).NotContains("9876543210")
	gt.S(t, out).NotContains("priya@example.com")
	gt.S(t, out).Contains("haircut")
}
