package client

import (
	"errors"
	"testing"
	"time"

	"github.com/ryuvi/carchat/chat/wire"
)

func TestFormatPreco(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{55000, "R$ 55.000,00"},
		{1234567.89, "R$ 1.234.567,89"},
		{999.5, "R$ 999,50"},
		{0, "R$ 0,00"},
	}
	for _, tt := range tests {
		if got := formatPreco(tt.in); got != tt.want {
			t.Fatalf("formatPreco(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatKM(t *testing.T) {
	if got := formatKM(123456); got != "123.456 km" {
		t.Fatalf("formatKM = %q", got)
	}
	if got := formatKM(900); got != "900 km" {
		t.Fatalf("formatKM = %q", got)
	}
}

func TestPollTimeoutIsNotAnError(t *testing.T) {
	c := &Conn{replies: make(chan wire.Reply), errs: make(chan error, 1)}

	start := time.Now()
	_, ok, err := c.Poll(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("Poll returned error on timeout: %v", err)
	}
	if ok {
		t.Fatal("Poll reported a reply on timeout")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("Poll blocked for %v, want a bounded wait", elapsed)
	}
}

func TestPollDeliversPendingReply(t *testing.T) {
	c := &Conn{replies: make(chan wire.Reply, 1), errs: make(chan error, 1)}
	c.replies <- wire.Reply{Message: "olá"}

	reply, ok, err := c.Poll(time.Second)
	if err != nil || !ok {
		t.Fatalf("Poll = (%v, %v)", ok, err)
	}
	if reply.Message != "olá" {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestPollSurfacesTransportFault(t *testing.T) {
	c := &Conn{replies: make(chan wire.Reply), errs: make(chan error, 1)}
	c.errs <- errors.New("conexão perdida")

	_, ok, err := c.Poll(time.Second)
	if ok || err == nil {
		t.Fatalf("Poll = (%v, %v), want transport fault", ok, err)
	}
}
