package whatsapp

import (
	"strings"
	"testing"
)

func TestLink(t *testing.T) {
	got := Link("081234567890", "")
	if got != "https://wa.me/6281234567890" {
		t.Fatalf("Link = %q", got)
	}
}

func TestLinkEncodesMessage(t *testing.T) {
	got := Link("+6281234567890", "Halo, apa kabar?")
	want := "https://wa.me/6281234567890?text=Halo%2C+apa+kabar%3F"
	if got != want {
		t.Fatalf("Link = %q, want %q", got, want)
	}
}

func TestLinkEmptyWhenNotDialable(t *testing.T) {
	if got := Link("not a number", "hi"); got != "" {
		t.Fatalf("expected empty link, got %q", got)
	}
}

func TestGreetingMessage(t *testing.T) {
	msg := GreetingMessage("Budi")
	if !strings.Contains(msg, "Budi") {
		t.Fatalf("greeting does not mention contact: %q", msg)
	}
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("081234567890", "", 0)
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("QRPNG returned empty image")
	}
	// PNG magic bytes
	if string(png[1:4]) != "PNG" {
		t.Fatalf("QRPNG did not return a PNG, header %q", png[:8])
	}

	if _, err := QRPNG("no digits", "", 128); err == nil {
		t.Fatal("expected error for undialable number")
	}
}
