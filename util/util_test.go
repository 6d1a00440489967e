package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMinInt(t *testing.T) {
	require.Equal(t, 1, MinInt(1, 2))
	require.Equal(t, 1, MinInt(2, 1))
	require.Equal(t, -3, MinInt(-3, 0))
}

func TestNewImmediateTickerFiresImmediately(t *testing.T) {
	ticker := NewImmediateTicker(time.Hour)
	defer ticker.Stop()
	select {
	case <-ticker.C:
	case <-time.After(time.Second):
		t.Fatal("no immediate tick")
	}
}

func TestImmediateTickerStop(t *testing.T) {
	ticker := NewImmediateTicker(10 * time.Millisecond)
	<-ticker.C
	ticker.Stop()
	time.Sleep(30 * time.Millisecond)
	// one tick may have been in flight when Stop was called
	select {
	case <-ticker.C:
	default:
	}
	select {
	case <-ticker.C:
		t.Fatal("tick delivered after stop")
	case <-time.After(50 * time.Millisecond):
	}
}
