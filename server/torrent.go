package server

import (
	"erri120/httptracker/protocol"
)

// Swarm is a minimal in-memory peer store for a single torrent, enough to
// back the lookup functions in tests and the demo. Real deployments provide
// their own store.
type Swarm struct {
	Peers      []protocol.Peer
	Complete   uint32
	Downloaded uint32
	Incomplete uint32
}

// AddPeer adds a peer unless the same address and port are already known.
func (swarm *Swarm) AddPeer(peer protocol.Peer) {
	for _, existing := range swarm.Peers {
		if existing.Ip.Equal(peer.Ip) && existing.Port == peer.Port {
			return
		}
	}

	swarm.Peers = append(swarm.Peers, peer)
}

func (swarm *Swarm) Statistics() protocol.PeerStatistics {
	return protocol.PeerStatistics{
		Complete:   swarm.Complete,
		Downloaded: swarm.Downloaded,
		Incomplete: swarm.Incomplete,
	}
}
