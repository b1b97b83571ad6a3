package protocol

import (
	"erri120/httptracker/bencode"
)

// PeerData is either a compact peer blob or a list of peer dictionaries,
// never both. The shape is picked once when the response is built.
type PeerData struct {
	compact   []byte
	long      []Peer
	isCompact bool
}

func CompactPeers(blob []byte) PeerData {
	return PeerData{compact: blob, isCompact: true}
}

func LongPeers(peers []Peer) PeerData {
	return PeerData{long: peers}
}

func (data PeerData) bencode() bencode.Value {
	if data.isCompact {
		return bencode.String(data.compact)
	}

	peers := bencode.List{}
	for _, peer := range data.long {
		dict := bencode.NewDict()
		dict.Set("ip", bencode.String(peer.Ip.String()))
		dict.Set("peer id", bencode.String(peer.Id[:]))
		dict.Set("port", bencode.Integer(peer.Port))
		peers = append(peers, dict)
	}

	return peers
}

type AnnounceResponse struct {
	Interval uint32   // Seconds the client should wait between announces.
	Peers    PeerData // IPv4 peers.
	Peers6   PeerData // IPv6 peers.
}

// NewAnnounceResponse splits the peers from the store by address family and
// shapes them the way the request asked for. The store order is kept.
func NewAnnounceResponse(interval uint32, peers []Peer, compact CompactMode) (AnnounceResponse, error) {
	response := AnnounceResponse{Interval: interval}

	if compact.Enabled() {
		blob, err := IPv4Peers(peers).MarshalBinary()
		if err != nil {
			return response, err
		}
		response.Peers = CompactPeers(blob)

		blob, err = IPv6Peers(peers).MarshalBinary()
		if err != nil {
			return response, err
		}
		response.Peers6 = CompactPeers(blob)

		return response, nil
	}

	var v4, v6 []Peer
	for _, peer := range peers {
		if peer.Ip.To4() != nil {
			v4 = append(v4, peer)
		} else if peer.Ip.To16() != nil {
			v6 = append(v6, peer)
		}
	}

	response.Peers = LongPeers(v4)
	response.Peers6 = LongPeers(v6)
	return response, nil
}

func (response AnnounceResponse) MarshalBencode() []byte {
	dict := bencode.NewDict()
	dict.Set("interval", bencode.Integer(response.Interval))
	dict.Set("peers", response.Peers.bencode())
	dict.Set("peers6", response.Peers6.bencode())
	return bencode.Encode(dict)
}

// ScrapeResponse maps each requested torrent to its swarm statistics, BEP 48.
type ScrapeResponse struct {
	Files map[InfoHash]PeerStatistics
}

func (response ScrapeResponse) MarshalBencode() []byte {
	files := bencode.NewDict()
	for infoHash, statistics := range response.Files {
		dict := bencode.NewDict()
		dict.Set("complete", bencode.Integer(statistics.Complete))
		dict.Set("downloaded", bencode.Integer(statistics.Downloaded))
		dict.Set("incomplete", bencode.Integer(statistics.Incomplete))
		files.Set(bencode.String(infoHash[:]), dict)
	}

	root := bencode.NewDict()
	root.Set("files", files)
	return bencode.Encode(root)
}

// FailureReason builds the conventional bencoded error response.
func FailureReason(message string) []byte {
	dict := bencode.NewDict()
	dict.Set("failure reason", bencode.String(message))
	return bencode.Encode(dict)
}
