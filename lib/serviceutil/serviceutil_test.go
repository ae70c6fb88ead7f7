package serviceutil

import (
	"syscall"
	"testing"
	"time"
)

func TestSignalContextCancelsOnInterrupt(t *testing.T) {
	ctx := SignalContext()

	err := syscall.Kill(syscall.Getpid(), syscall.SIGINT)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(time.Second * 5):
		t.Fatal("context was not cancelled after SIGINT")
	}
}
