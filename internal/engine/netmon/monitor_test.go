package netmon_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/itinerary/internal/core/ports/mocks"
	"go.trai.ch/itinerary/internal/engine/netmon"
	"go.uber.org/mock/gomock"
)

func TestMonitor_NotifiesOnlyOnTransition(t *testing.T) {
	m := netmon.New(true)

	var got []bool
	m.Subscribe(func(online bool) { got = append(got, online) })

	m.SetOnline(false)
	m.SetOnline(false)
	m.SetOnline(true)
	m.SetOnline(true)

	assert.Equal(t, []bool{false, true}, got)
	assert.True(t, m.IsConnected())
}

func TestMonitor_RegistrationOrder(t *testing.T) {
	m := netmon.New(true)

	var order []string
	m.Subscribe(func(bool) { order = append(order, "a") })
	m.Subscribe(func(bool) { order = append(order, "b") })
	m.Subscribe(func(bool) { order = append(order, "c") })

	m.SetOnline(false)

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestMonitor_UnsubscribeDuringNotification(t *testing.T) {
	m := netmon.New(true)

	var calls []string
	var unsubscribeB func()
	m.Subscribe(func(bool) {
		calls = append(calls, "a")
		unsubscribeB()
	})
	unsubscribeB = m.Subscribe(func(bool) { calls = append(calls, "b") })
	m.Subscribe(func(bool) { calls = append(calls, "c") })

	m.SetOnline(false)
	assert.Equal(t, []string{"a", "c"}, calls, "b is removed before its turn in the same pass")

	calls = nil
	m.SetOnline(true)
	assert.Equal(t, []string{"a", "c"}, calls)
}

func TestMonitor_SelfUnsubscribeIsIdempotent(t *testing.T) {
	m := netmon.New(false)

	var count int
	var unsubscribe func()
	unsubscribe = m.Subscribe(func(bool) {
		count++
		unsubscribe()
		unsubscribe()
	})

	m.SetOnline(true)
	m.SetOnline(false)
	unsubscribe()

	assert.Equal(t, 1, count)
}

func TestMonitor_SubscribeDuringNotification(t *testing.T) {
	m := netmon.New(true)

	var late int
	m.Subscribe(func(bool) {
		m.Subscribe(func(bool) { late++ })
	})

	m.SetOnline(false)
	assert.Equal(t, 0, late, "listeners added during a pass wait for the next transition")

	m.SetOnline(true)
	assert.Equal(t, 1, late)
}

func TestPoll(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		probe := mocks.NewMockConnectivityProbe(ctrl)

		readings := []bool{true, true, false, true}
		probe.EXPECT().Online(gomock.Any()).DoAndReturn(func(context.Context) bool {
			if len(readings) == 0 {
				return true
			}
			r := readings[0]
			readings = readings[1:]
			return r
		}).AnyTimes()

		m := netmon.New(false)
		var got []bool
		m.Subscribe(func(online bool) { got = append(got, online) })

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second+time.Millisecond)
		defer cancel()

		err := netmon.Poll(ctx, probe, m, time.Second)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		assert.Equal(t, []bool{true, false, true}, got)
		assert.True(t, m.IsConnected())
	})
}
