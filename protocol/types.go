package protocol

import (
	"fmt"
)

// InfoHash is the 20 byte SHA-1 hash identifying a torrent.
type InfoHash [20]byte

// PeerId is the 20 byte identifier a peer picks for itself.
type PeerId [20]byte

// ParseInfoHash converts the raw (already percent-decoded) query value into
// an InfoHash.
func ParseInfoHash(s string) (InfoHash, error) {
	var infoHash InfoHash
	if len(s) != len(infoHash) {
		return infoHash, fmt.Errorf("info_hash must be %d bytes, got %d", len(infoHash), len(s))
	}

	copy(infoHash[:], s)
	return infoHash, nil
}

// ParsePeerId converts the raw (already percent-decoded) query value into a
// PeerId.
func ParsePeerId(s string) (PeerId, error) {
	var peerId PeerId
	if len(s) != len(peerId) {
		return peerId, fmt.Errorf("peer_id must be %d bytes, got %d", len(peerId), len(s))
	}

	copy(peerId[:], s)
	return peerId, nil
}

type AnnounceEvent int32

const (
	AnnounceEventNone      AnnounceEvent = 0
	AnnounceEventCompleted AnnounceEvent = 1 // The peer just completed the torrent.
	AnnounceEventStarted   AnnounceEvent = 2 // The peer has just resumed this torrent.
	AnnounceEventStopped   AnnounceEvent = 3 // The peer is leaving the swarm.
)

// ParseAnnounceEvent maps the event query parameter to an AnnounceEvent. An
// absent parameter means AnnounceEventNone.
func ParseAnnounceEvent(s string) (AnnounceEvent, error) {
	switch s {
	case "":
		return AnnounceEventNone, nil
	case "completed":
		return AnnounceEventCompleted, nil
	case "started":
		return AnnounceEventStarted, nil
	case "stopped":
		return AnnounceEventStopped, nil
	default:
		return AnnounceEventNone, fmt.Errorf("unknown event %q", s)
	}
}

// CompactMode is the tri-state compact query parameter: absent, "0" or "1".
type CompactMode uint8

const (
	CompactDefault CompactMode = 0
	CompactOff     CompactMode = 1
	CompactOn      CompactMode = 2
)

// Enabled reports whether the compact peer representation should be used.
// The default when the parameter is absent is compact.
func (mode CompactMode) Enabled() bool {
	return mode != CompactOff
}

func ParseCompactMode(s string) (CompactMode, error) {
	switch s {
	case "":
		return CompactDefault, nil
	case "0":
		return CompactOff, nil
	case "1":
		return CompactOn, nil
	default:
		return CompactDefault, fmt.Errorf("compact must be 0 or 1, got %q", s)
	}
}

// PeerStatistics is the per torrent swarm summary reported by scrape.
type PeerStatistics struct {
	Complete   uint32 // Number of seeders.
	Downloaded uint32 // Number of times the torrent completed.
	Incomplete uint32 // Number of leechers.
}
