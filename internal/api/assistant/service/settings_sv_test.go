package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/internal/entity"
	"VaniAssistant/pkg/kvstore"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	assert.Equal(t, entity.DefaultSettings(), f.svc.GetSettings(context.Background()))
}

func TestUpdateSettings(t *testing.T) {
	store := kvstore.NewMemory()
	f := newFixture(t, fixtureOptions{store: store})
	ctx := context.Background()

	want := entity.Settings{
		VoiceRate:           1.2,
		VoicePitch:          0.8,
		VoiceVolume:         0.5,
		AIEnabled:           true,
		ContinuousListening: true,
		Language:            "hi-IN",
	}
	got, err := f.svc.UpdateSettings(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	reloaded := newFixture(t, fixtureOptions{store: store})
	assert.Equal(t, want, reloaded.svc.GetSettings(ctx))
}

func TestUpdateSettings_Invalid(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	bad := entity.DefaultSettings()
	bad.VoiceVolume = 3

	_, err := f.svc.UpdateSettings(ctx, bad)
	assert.ErrorIs(t, err, assistant.ErrInvalidSettings)
	assert.Equal(t, entity.DefaultSettings(), f.svc.GetSettings(ctx))
}

func TestToggleSetting(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		check   func(t *testing.T, s entity.Settings)
		wantErr error
	}{
		{
			name:  "set bool",
			key:   "ai_enabled",
			value: true,
			check: func(t *testing.T, s entity.Settings) { assert.True(t, s.AIEnabled) },
		},
		{
			name:  "nil flips bool",
			key:   "wake_word_enabled",
			value: nil,
			check: func(t *testing.T, s entity.Settings) { assert.True(t, s.WakeWordEnabled) },
		},
		{
			name:  "key is case insensitive",
			key:   " Continuous_Listening ",
			value: true,
			check: func(t *testing.T, s entity.Settings) { assert.True(t, s.ContinuousListening) },
		},
		{
			name:  "number",
			key:   "voice_rate",
			value: 1.5,
			check: func(t *testing.T, s entity.Settings) { assert.Equal(t, 1.5, s.VoiceRate) },
		},
		{
			name:  "language",
			key:   "language",
			value: "hi-IN",
			check: func(t *testing.T, s entity.Settings) { assert.Equal(t, "hi-IN", s.Language) },
		},
		{
			name:    "unknown key",
			key:     "theme",
			value:   "dark",
			wantErr: assistant.ErrInvalidSettingKey,
		},
		{
			name:    "wrong type",
			key:     "ai_enabled",
			value:   "yes",
			wantErr: assistant.ErrInvalidSettingValue,
		},
		{
			name:    "out of range",
			key:     "voice_volume",
			value:   2.0,
			wantErr: assistant.ErrInvalidSettingValue,
		},
		{
			name:    "nil number",
			key:     "voice_pitch",
			value:   nil,
			wantErr: assistant.ErrInvalidSettingValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fixtureOptions{})
			ctx := context.Background()

			got, err := f.svc.ToggleSetting(ctx, tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, entity.DefaultSettings(), f.svc.GetSettings(ctx))
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
			assert.Equal(t, got, f.svc.GetSettings(ctx))
		})
	}
}

func TestCustomCommands(t *testing.T) {
	store := kvstore.NewMemory()
	f := newFixture(t, fixtureOptions{store: store})
	ctx := context.Background()

	first, err := f.svc.AddCustomCommand(ctx, assistant.AddCustomCommandRequest{Trigger: "  Lunch  Time ", Action: "https://food.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "lunch time", first.Trigger)

	_, err = f.svc.AddCustomCommand(ctx, assistant.AddCustomCommandRequest{Trigger: "news", Action: "open news.ycombinator.com"})
	require.NoError(t, err)

	updated, err := f.svc.AddCustomCommand(ctx, assistant.AddCustomCommandRequest{Trigger: "LUNCH TIME", Action: "https://other.example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	commands := f.svc.GetCustomCommands(ctx)
	require.Len(t, commands, 2)
	assert.Equal(t, "lunch time", commands[0].Trigger)
	assert.Equal(t, "https://other.example.com", commands[0].Action)
	assert.Equal(t, "news", commands[1].Trigger)

	reloaded := newFixture(t, fixtureOptions{store: store})
	assert.Len(t, reloaded.svc.GetCustomCommands(ctx), 2)

	require.NoError(t, f.svc.DeleteCustomCommand(ctx, "Lunch Time"))
	commands = f.svc.GetCustomCommands(ctx)
	require.Len(t, commands, 1)
	assert.Equal(t, "news", commands[0].Trigger)

	assert.ErrorIs(t, f.svc.DeleteCustomCommand(ctx, "lunch time"), assistant.ErrCustomCommandNotFound)
}

func TestAddCustomCommand_Invalid(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	_, err := f.svc.AddCustomCommand(ctx, assistant.AddCustomCommandRequest{Trigger: "   ", Action: "reload"})
	assert.ErrorIs(t, err, assistant.ErrInvalidTrigger)

	_, err = f.svc.AddCustomCommand(ctx, assistant.AddCustomCommandRequest{Trigger: "x", Action: " "})
	assert.ErrorIs(t, err, assistant.ErrInvalidCustomAction)

	assert.Empty(t, f.svc.GetCustomCommands(ctx))
}

func TestGetCustomCommands_ReturnsCopy(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	_, err := f.svc.AddCustomCommand(ctx, assistant.AddCustomCommandRequest{Trigger: "a", Action: "reload"})
	require.NoError(t, err)

	commands := f.svc.GetCustomCommands(ctx)
	commands[0].Action = "changed"

	assert.Equal(t, "reload", f.svc.GetCustomCommands(ctx)[0].Action)
}

func TestGetPatterns(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	resp := f.svc.GetPatterns(context.Background())
	require.NotEmpty(t, resp.Patterns)
	assert.Empty(t, resp.Collisions)
	assert.NotNil(t, resp.Collisions)
}
