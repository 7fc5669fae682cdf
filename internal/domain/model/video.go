package model

import (
	"fmt"
	"strconv"
	"strings"

	"telegram-video-bridge/internal/domain"
)

// PendingRequest is a video a website visitor asked for that has not been delivered yet.
// At most one exists per user.
type PendingRequest struct {
	UserID  string
	VideoID string
}

// ChannelRef names the source channel by numeric chat id or by its public @username.
type ChannelRef struct {
	ID       int64
	Username string // with the leading "@"
}

func (c ChannelRef) String() string {
	if c.Username != "" {
		return c.Username
	}
	return strconv.FormatInt(c.ID, 10)
}

// ParseChannel accepts the forms Telegram takes for a source chat: "-100123..." or "@name".
func ParseChannel(channel string) (ChannelRef, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return ChannelRef{}, domain.ErrMissingChannel
	}
	if name, ok := strings.CutPrefix(channel, "@"); ok {
		if !validUsername(name) {
			return ChannelRef{}, fmt.Errorf("%w: channel username %q", domain.ErrInvalidArgument, channel)
		}
		return ChannelRef{Username: channel}, nil
	}
	id, err := strconv.ParseInt(channel, 10, 64)
	if err != nil || id == 0 {
		return ChannelRef{}, fmt.Errorf("%w: channel id %q (want a numeric id or @username)", domain.ErrInvalidArgument, channel)
	}
	return ChannelRef{ID: id}, nil
}

func validUsername(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// VideoReference points at a post in the source channel. The channel is the catalog:
// a video id is the numeric message id of the post.
type VideoReference struct {
	Channel   ChannelRef
	MessageID int
}

func ParseVideoReference(channel, videoID string) (VideoReference, error) {
	ch, err := ParseChannel(channel)
	if err != nil {
		return VideoReference{}, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(videoID))
	if err != nil || id <= 0 {
		return VideoReference{}, fmt.Errorf("%w: video id %q", domain.ErrInvalidArgument, videoID)
	}
	return VideoReference{Channel: ch, MessageID: id}, nil
}

// ParseTelegramID converts an opaque user identifier into a Telegram chat id.
func ParseTelegramID(userID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(userID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: user id %q", domain.ErrInvalidArgument, userID)
	}
	return id, nil
}
