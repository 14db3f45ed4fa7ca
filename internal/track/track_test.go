package track

import (
	"errors"
	"math"
	"testing"

	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/domain/mocks"
	"github.com/genricoloni/tracksync/internal/fakemedia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Preload(t *testing.T) {
	ctrl := gomock.NewController(t)
	el := mocks.NewMockMediaElement(ctrl)
	el.EXPECT().SetPreload("auto")

	New(zap.NewNop(), el, true)
}

func TestNew_NoPreload(t *testing.T) {
	ctrl := gomock.NewController(t)
	el := mocks.NewMockMediaElement(ctrl)
	// no expectations: any element call fails the test

	New(zap.NewNop(), el, false)
}

func TestTrack_Attr(t *testing.T) {
	el := fakemedia.New("craw", 3)
	el.Advance(domain.HaveEnoughData)
	tr := New(zap.NewNop(), el, false)

	returned := tr.SetAttr(AttrCurrentTime, 1.5).SetAttr(AttrPreload, "metadata").SetAttr(AttrVolume, 0.25)

	assert.Same(t, tr, returned)
	assert.Equal(t, 1.5, tr.Attr(AttrCurrentTime))
	assert.Equal(t, "metadata", tr.Attr(AttrPreload))
	assert.Equal(t, 0.25, tr.Attr(AttrVolume))
	assert.Equal(t, 3.0, tr.Attr(AttrDuration))
	assert.Equal(t, domain.HaveEnoughData, tr.Attr(AttrReadyState))
	assert.Nil(t, tr.Attr("rel"))
}

func TestTrack_SetAttrIntegerValue(t *testing.T) {
	el := fakemedia.New("craw", 3)
	el.Advance(domain.HaveMetadata)
	tr := New(zap.NewNop(), el, false)

	tr.SetAttr(AttrCurrentTime, 2)

	assert.Equal(t, 2.0, el.CurrentTime())
}

func TestTrack_SetAttrRejected(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		value   any
		wantErr error
	}{
		{"Unknown Name", "rel", "test", domain.ErrUnknownAttribute},
		{"Read Only Duration", AttrDuration, 10.0, domain.ErrReadOnlyAttribute},
		{"Read Only Ready State", AttrReadyState, 4, domain.ErrReadOnlyAttribute},
		{"String For Number", AttrCurrentTime, "2", domain.ErrInvalidAttribute},
		{"Number For Preload", AttrPreload, 1, domain.ErrInvalidAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			el := fakemedia.New("craw", 3)
			tr := New(zap.New(core), el, false)

			returned := tr.SetAttr(tt.attr, tt.value)

			assert.Same(t, tr, returned)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			err, ok := entry.ContextMap()["error"].(string)
			require.True(t, ok)
			assert.Contains(t, err, tt.wantErr.Error())
			assert.Equal(t, 0.0, el.CurrentTime())
			assert.Equal(t, "none", el.Preload())
		})
	}
}

func TestTrack_Transport(t *testing.T) {
	ctrl := gomock.NewController(t)
	el := mocks.NewMockMediaElement(ctrl)
	tr := New(zap.NewNop(), el, false)

	gomock.InOrder(
		el.EXPECT().Play().Return(nil),
		el.EXPECT().Pause().Return(nil),
		el.EXPECT().SetCurrentTime(42.0),
		el.EXPECT().Pause().Return(nil),
		el.EXPECT().SetCurrentTime(0.0),
	)

	require.NoError(t, tr.Play())
	require.NoError(t, tr.Pause())
	tr.Seek(42)
	require.NoError(t, tr.Stop())
}

func TestTrack_StopPauseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	el := mocks.NewMockMediaElement(ctrl)
	tr := New(zap.NewNop(), el, false)

	pauseErr := errors.New("element detached")
	el.EXPECT().Pause().Return(pauseErr)
	// SetCurrentTime must not be called

	assert.ErrorIs(t, tr.Stop(), pauseErr)
}

func TestTrack_SetVolume(t *testing.T) {
	tests := []struct {
		name     string
		volume   float64
		expected float64
	}{
		{"Full", 100, 1},
		{"Half", 50, 0.5},
		{"Fractional", 12.5, 0.125},
		{"Mute", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := fakemedia.New("craw", 3)
			New(zap.NewNop(), el, false).SetVolume(tt.volume)
			assert.Equal(t, tt.expected, el.Volume())
		})
	}
}

func TestTrack_TimeHelpers(t *testing.T) {
	el := fakemedia.New("craw", 3)
	tr := New(zap.NewNop(), el, false)

	// no metadata yet
	assert.Equal(t, "--:--", tr.HumanizedDuration(false))
	assert.True(t, math.IsNaN(tr.Average(0)))

	el.Advance(domain.HaveEnoughData)
	tr.Seek(1.2)

	assert.Equal(t, 40.0, tr.Average(0))
	assert.Equal(t, 40.0, tr.Average(2))
	assert.Equal(t, "00:03", tr.HumanizedDuration(false))
	assert.Equal(t, "00:00:03", tr.HumanizedDuration(true))
	assert.Equal(t, "00:01", tr.HumanizedTime(false))
	assert.Equal(t, "00:00:01", tr.HumanizedTime(true))
}

func TestTrack_BufferedRanges(t *testing.T) {
	el := fakemedia.New("craw", 30)
	tr := New(zap.NewNop(), el, false)

	assert.Empty(t, tr.BufferedRanges())

	el.SetBuffered(
		domain.BufferedRange{Start: 0, End: 4.5},
		domain.BufferedRange{Start: 10, End: 12},
		domain.BufferedRange{Start: 20, End: 30},
	)

	assert.Equal(t, []domain.BufferedRange{
		{Start: 0, End: 4.5},
		{Start: 10, End: 12},
		{Start: 20, End: 30},
	}, tr.BufferedRanges())
}

func TestTrack_On(t *testing.T) {
	el := fakemedia.New("craw", 3)
	tr := New(zap.NewNop(), el, false)

	var targets []any
	sub := tr.On("theevent", func(ev domain.Event) {
		targets = append(targets, ev.Target)
	})
	binder := struct{ name string }{"binder"}
	tr.OnTarget("theevent", func(ev domain.Event) {
		targets = append(targets, ev.Target)
	}, binder)

	el.Fire("theevent")
	require.Len(t, targets, 2)
	assert.Same(t, tr, targets[0])
	assert.Equal(t, binder, targets[1])

	sub.Unsubscribe()
	el.Fire("theevent")
	assert.Len(t, targets, 3)
}

func TestTrack_LifecycleEvents(t *testing.T) {
	el := fakemedia.New("craw", 3)
	tr := New(zap.NewNop(), el, true)

	var fired []domain.EventType
	for _, ev := range []domain.EventType{
		domain.EventLoadedMetadata, domain.EventLoadedData, domain.EventCanPlay, domain.EventCanPlayThrough,
	} {
		tr.On(ev, func(e domain.Event) { fired = append(fired, e.Type) })
	}

	el.Advance(domain.HaveEnoughData)

	assert.Equal(t, []domain.EventType{
		domain.EventLoadedMetadata, domain.EventLoadedData, domain.EventCanPlay, domain.EventCanPlayThrough,
	}, fired)
	assert.Equal(t, "auto", el.Preload())
}
