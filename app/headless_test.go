//go:build !tinygo

package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"colorbrowser/hal"
)

func TestHeadlessScript(t *testing.T) {
	var log bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := hal.RunHeadless(ctx, func(h hal.HAL) func() error {
		return New(h, Config{})
	}, hal.HeadlessConfig{Enabled: true, Hz: 200, Script: "uu s uuu . b"}, hal.HostConfig{Log: &log})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}

	out := log.String()
	var last string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "colorbrowser: 0b") {
			last = line
		}
	}
	if want := "colorbrowser: 0b11101100 #aaff00 sel=green"; last != want {
		t.Fatalf("expected last color line %q, got %q in:\n%s", want, last, out)
	}
	if !strings.Contains(out, "colorbrowser: exit") {
		t.Fatalf("expected exit line, got:\n%s", out)
	}
}
