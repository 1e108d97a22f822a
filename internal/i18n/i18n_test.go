package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT(t *testing.T) {
	require.NoError(t, Init("en"))
	ctx := context.Background()

	assert.Equal(t, "Clocked in", T(ctx, "activity.clock_in"))
	assert.Equal(t,
		"Submitted Sick Leave (SL) for 3 day(s)",
		T(ctx, "activity.leave_submitted", map[string]any{"Type": "Sick Leave (SL)", "Days": 3}),
	)
	assert.Equal(t, "Absen pulang", T(WithLocale(ctx, "id"), "activity.clock_out"))
}

func TestT_UnknownMessageFallsBackToID(t *testing.T) {
	assert.Equal(t, "activity.unknown", T(context.Background(), "activity.unknown"))
}

func TestLocaleFromContext_Default(t *testing.T) {
	require.NoError(t, Init("id"))
	t.Cleanup(func() { _ = Init("en") })

	assert.Equal(t, "id", LocaleFromContext(context.Background()))
	assert.Equal(t, "en", LocaleFromContext(WithLocale(context.Background(), "en")))
}
