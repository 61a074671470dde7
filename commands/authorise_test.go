package commands

import (
	"fmt"
	"net"
	"testing"
)

func TestRedirectURL(t *testing.T) {
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 53682}

	if url := redirectURL(addr); url != "http://127.0.0.1:53682/" {
		t.Errorf("Incorrect redirect URL - expected:%v, got:%v", "http://127.0.0.1:53682/", url)
	}
}

func TestRedirectURLForListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Unexpected error opening listener (%v)", err)
	}

	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	expected := fmt.Sprintf("http://127.0.0.1:%v/", port)

	if url := redirectURL(listener.Addr()); url != expected {
		t.Errorf("Incorrect redirect URL - expected:%v, got:%v", expected, url)
	}
}
