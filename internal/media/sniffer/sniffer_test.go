package sniffer

import (
	"errors"
	"net/http"
	"testing"
)

func TestDetectHead(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want MediaType
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00}, TypePNG},
		{"gif87", []byte("GIF87a trailing"), TypeGIF},
		{"gif89", []byte("GIF89a trailing"), TypeGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP},
		{"avif", []byte("\x00\x00\x00\x20ftypavif\x00\x00\x00\x00"), TypeAVIF},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := DetectHead(tc.head)
			if err != nil {
				t.Fatalf("DetectHead: %v", err)
			}
			if result.Type != tc.want {
				t.Errorf("got %s, want %s", result.Type, tc.want)
			}
			if result.MIME == "" {
				t.Error("missing MIME type")
			}
		})
	}
}

func TestDetectHeadUnknown(t *testing.T) {
	for _, head := range [][]byte{nil, {}, []byte("plain text"), []byte("<svg xmlns=")} {
		if _, err := DetectHead(head); !errors.Is(err, ErrUnknownType) {
			t.Errorf("DetectHead(%q): expected ErrUnknownType, got %v", head, err)
		}
	}
}

func TestMimeTypeFromHTTP(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "image/png; charset=binary")
	if got := MimeTypeFromHTTP(header); got != "image/png" {
		t.Errorf("got %q, want image/png", got)
	}

	if got := MimeTypeFromHTTP(http.Header{}); got != "" {
		t.Errorf("empty header: got %q", got)
	}
}
