package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides enhanced structured logging for the pipeline
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new enhanced logger writing JSON to stderr so that the
// report on stdout stays machine-parseable
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Add timestamp in RFC3339 format
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// StageLogger logs completion of a pipeline stage
func (l *Logger) StageLogger(stage string, duration time.Duration, attrs ...any) {
	args := []any{
		"stage", stage,
		"duration_ms", duration.Milliseconds(),
	}
	args = append(args, attrs...)
	l.Info("Stage Completed", args...)
}

// DatasetLogger logs dataset shape changes across filtering steps
func (l *Logger) DatasetLogger(step string, rowsBefore, rowsAfter int) {
	l.Info("Dataset Transformed",
		"step", step,
		"rows_before", rowsBefore,
		"rows_after", rowsAfter,
		"rows_dropped", rowsBefore-rowsAfter,
	)
}

// TrainingLogger logs one training epoch
func (l *Logger) TrainingLogger(epoch int, trainLoss, valLoss float64) {
	l.Debug("Training Epoch",
		"epoch", epoch,
		"train_loss", trainLoss,
		"val_loss", valLoss,
	)
}

// PredictionLogger logs the final personal-record prediction
func (l *Logger) PredictionLogger(kg, lbs float64) {
	l.Info("Prediction Completed",
		"deadlift_kg", kg,
		"deadlift_lbs", lbs,
	)
}
