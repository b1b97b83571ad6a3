package protocol

import (
	"fmt"
	"net/url"
	"strconv"
)

// AnnounceRequest is a decoded announce query string.
type AnnounceRequest struct {
	InfoHash   InfoHash      //
	PeerId     PeerId        //
	Port       uint16        // Port the peer is listening on.
	Uploaded   uint64        // Number of bytes uploaded.
	Downloaded uint64        // Number of bytes downloaded.
	Left       uint64        // Number of bytes left.
	Event      AnnounceEvent //
	Compact    CompactMode   //
}

// ScrapeRequest is a decoded scrape query string, zero or more info hashes.
type ScrapeRequest struct {
	InfoHashes []InfoHash
}

// ParseAnnounceRequest decodes and validates an announce query. The returned
// error is suitable as a failure reason for the client.
func ParseAnnounceRequest(query url.Values) (AnnounceRequest, error) {
	var request AnnounceRequest
	var err error

	if request.InfoHash, err = ParseInfoHash(query.Get("info_hash")); err != nil {
		return request, err
	}

	if request.PeerId, err = ParsePeerId(query.Get("peer_id")); err != nil {
		return request, err
	}

	port, err := strconv.ParseUint(query.Get("port"), 10, 16)
	if err != nil {
		return request, fmt.Errorf("invalid port %q", query.Get("port"))
	}
	request.Port = uint16(port)

	if request.Uploaded, err = parseCounter(query, "uploaded"); err != nil {
		return request, err
	}

	if request.Downloaded, err = parseCounter(query, "downloaded"); err != nil {
		return request, err
	}

	if request.Left, err = parseCounter(query, "left"); err != nil {
		return request, err
	}

	if request.Event, err = ParseAnnounceEvent(query.Get("event")); err != nil {
		return request, err
	}

	if request.Compact, err = ParseCompactMode(query.Get("compact")); err != nil {
		return request, err
	}

	return request, nil
}

// ParseScrapeRequest decodes a scrape query. Every info_hash occurrence is
// validated, a single bad one fails the whole request.
func ParseScrapeRequest(query url.Values) (ScrapeRequest, error) {
	var request ScrapeRequest

	for _, value := range query["info_hash"] {
		infoHash, err := ParseInfoHash(value)
		if err != nil {
			return ScrapeRequest{}, err
		}

		request.InfoHashes = append(request.InfoHashes, infoHash)
	}

	return request, nil
}

// the byte counters are unsigned 64-bit, wider than the bencode integers
// used in responses
func parseCounter(query url.Values, key string) (uint64, error) {
	value, err := strconv.ParseUint(query.Get(key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, query.Get(key))
	}

	return value, nil
}
