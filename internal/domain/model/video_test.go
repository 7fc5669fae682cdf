//go:build !integration

package model

import (
	"errors"
	"testing"

	"telegram-video-bridge/internal/domain"
)

func TestParseVideoReference(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		videoID string
		want    VideoReference
		wantErr error
	}{
		{name: "numeric id", channel: "-1001234", videoID: "42", want: VideoReference{Channel: ChannelRef{ID: -1001234}, MessageID: 42}},
		{name: "padded id", channel: "-1001234", videoID: " 7 ", want: VideoReference{Channel: ChannelRef{ID: -1001234}, MessageID: 7}},
		{name: "channel username", channel: "@my_channel", videoID: "42", want: VideoReference{Channel: ChannelRef{Username: "@my_channel"}, MessageID: 42}},
		{name: "non numeric", channel: "-1001234", videoID: "abc", wantErr: domain.ErrInvalidArgument},
		{name: "zero", channel: "-1001234", videoID: "0", wantErr: domain.ErrInvalidArgument},
		{name: "no channel", channel: "", videoID: "42", wantErr: domain.ErrMissingChannel},
		{name: "bare channel name", channel: "my_channel", videoID: "42", wantErr: domain.ErrInvalidArgument},
		{name: "empty username", channel: "@", videoID: "42", wantErr: domain.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoReference(tt.channel, tt.videoID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("wanted %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestChannelRef_String(t *testing.T) {
	if got := (ChannelRef{ID: -100}).String(); got != "-100" {
		t.Errorf("numeric channel = %q", got)
	}
	if got := (ChannelRef{Username: "@news"}).String(); got != "@news" {
		t.Errorf("username channel = %q", got)
	}
}

func TestParseTelegramID(t *testing.T) {
	id, err := ParseTelegramID("1001")
	if err != nil || id != 1001 {
		t.Fatalf("expected 1001, got %d (%v)", id, err)
	}
	if _, err := ParseTelegramID("someone"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
