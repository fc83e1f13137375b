package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	r.events = append(r.events, ev)
}

func TestLogUseCaseObserver_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewLogUseCaseObserver(logger.FromZap(zap.New(core)))
	ctx := context.Background()

	done := useCase(ctx, obs, "assign-course", map[string]any{"title": "Biology"})
	done(nil)

	failure := errors.New("slot index out of range")
	done = useCase(ctx, obs, "clear-slot", nil)
	done(&failure)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "assign-course", fields["use_case"])
	assert.Equal(t, "Biology", fields["title"])
	assert.Equal(t, true, fields["success"])
	assert.NotEmpty(t, fields["op_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "slot index out of range", entries[1].ContextMap()["error"])
	assert.NotEqual(t, fields["op_id"], entries[1].ContextMap()["op_id"])
}

func TestLogUseCaseObserver_SuccessVisibleAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogUseCaseObserver(logger.FromZap(zap.New(core)))

	done := useCase(context.Background(), obs, "select-course", map[string]any{"title": "Ceramics"})
	done(nil)

	entries := logs.FilterMessage("service_use_case").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "select-course", entries[0].ContextMap()["use_case"])
}

func TestNewLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
	assert.NotPanics(t, func() {
		obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	})
}
