package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
)

// Peer is a single swarm member as handed over by the peer store.
type Peer struct {
	Id   PeerId
	Ip   net.IP
	Port uint16
}

type IPv4Peers []Peer

type IPv6Peers []Peer

// MarshalBinary packs the peers into the BEP 23 compact form, one 6 byte
// record per peer: 4 address bytes followed by the big-endian port.
func (peers IPv4Peers) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(peers)*(net.IPv4len+2)))

	for _, peer := range peers {
		ip := peer.Ip.To4()

		// skip this peer if the IP is not IPv4
		if ip == nil {
			continue
		}

		if _, err := buf.Write(ip); err != nil {
			return nil, err
		}

		if err := binary.Write(buf, binary.BigEndian, &peer.Port); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a compact IPv4 peer blob. The peer ids are not
// part of the compact form and stay zero.
func (peers *IPv4Peers) UnmarshalBinary(data []byte) error {
	if len(data)%(net.IPv4len+2) != 0 {
		return fmt.Errorf("compact IPv4 peer data of %d bytes is not a multiple of %d", len(data), net.IPv4len+2)
	}

	reader := bytes.NewReader(data)
	for reader.Len() > 0 {
		ip := make(net.IP, net.IPv4len)
		if _, err := reader.Read(ip); err != nil {
			return err
		}

		var port uint16
		if err := binary.Read(reader, binary.BigEndian, &port); err != nil {
			return err
		}

		*peers = append(*peers, Peer{Ip: ip, Port: port})
	}

	return nil
}

// MarshalBinary packs the peers into the 18 byte IPv6 compact form: 16
// address bytes followed by the big-endian port.
func (peers IPv6Peers) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(peers)*(net.IPv6len+2)))

	for _, peer := range peers {
		// skip this peer if the IP is not IPv6
		if peer.Ip.To4() != nil {
			continue
		}

		ip := peer.Ip.To16()
		if ip == nil {
			continue
		}

		if _, err := buf.Write(ip); err != nil {
			return nil, err
		}

		if err := binary.Write(buf, binary.BigEndian, &peer.Port); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a compact IPv6 peer blob.
func (peers *IPv6Peers) UnmarshalBinary(data []byte) error {
	if len(data)%(net.IPv6len+2) != 0 {
		return fmt.Errorf("compact IPv6 peer data of %d bytes is not a multiple of %d", len(data), net.IPv6len+2)
	}

	reader := bytes.NewReader(data)
	for reader.Len() > 0 {
		ip := make(net.IP, net.IPv6len)
		if _, err := reader.Read(ip); err != nil {
			return err
		}

		var port uint16
		if err := binary.Read(reader, binary.BigEndian, &port); err != nil {
			return err
		}

		*peers = append(*peers, Peer{Ip: ip, Port: port})
	}

	return nil
}
